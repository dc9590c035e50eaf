// Package streaming содержит компоненты для потокового воспроизведения аудио
package streaming

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Reader представляет буферизованный поток для чтения аудиоданных порциями
type Reader struct {
	reader     *bufio.Reader
	resp       *http.Response
	bufferSize int
}

// NewReader создает новый потоковый ридер для указанного URL
func NewReader(ctx context.Context, url string, bufferSize int) (*Reader, error) {
	// HTTP клиент без общего таймаута: поток читается дольше любого
	// разумного лимита, ограничиваем только установление соединения
	client := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
			IdleConnTimeout:       300 * time.Second,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   2,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	// Заголовки для потокового чтения: без сжатия, с начала файла
	req.Header.Set("Accept-Encoding", "identity")
	req.Header.Set("Range", "bytes=0-")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("User-Agent", "go-tuner/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, fmt.Errorf("ошибка HTTP: %s", resp.Status)
	}

	return &Reader{
		reader:     bufio.NewReaderSize(resp.Body, bufferSize),
		resp:       resp,
		bufferSize: bufferSize,
	}, nil
}

// Read реализует интерфейс io.Reader для потокового чтения
func (sr *Reader) Read(p []byte) (n int, err error) {
	return sr.reader.Read(p)
}

// Close закрывает соединение
func (sr *Reader) Close() error {
	return sr.resp.Body.Close()
}
