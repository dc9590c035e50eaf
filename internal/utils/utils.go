// Package utils содержит утилитарные функции, используемые в разных частях приложения
package utils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatTime форматирует позицию воспроизведения в секундах в формат MM:SS.
// Отрицательные значения и NaN отображаются как "00:00".
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		return "00:00"
	}
	mins := int(seconds) / 60
	secs := int(seconds) % 60
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

// FormatDuration форматирует time.Duration в формат MM:SS
func FormatDuration(d time.Duration) string {
	return FormatTime(d.Seconds())
}

// TruncateString обрезает строку до указанной длины, добавляя "..." если строка длиннее
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// NormalizeMediaPath приводит разделители пути, возвращаемые сервером,
// к прямым слэшам, чтобы из пути можно было собрать корректный URL.
// Сервер может отдавать пути в нотации своей ОС (с обратными слэшами).
func NormalizeMediaPath(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
