// Package playback содержит менеджер воспроизведения - единственное
// разделяемое состояние "что сейчас играет" для всех экранов приложения
package playback

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hazadus/go-tuner/internal/api"
	"github.com/hazadus/go-tuner/internal/events"
	"github.com/hazadus/go-tuner/internal/session"
	"github.com/hazadus/go-tuner/internal/storage"
)

// Имя плейлиста, который ведется автоматически вместе с избранным
const likedPlaylistName = "Мне нравится"

// Перемотка на начало вместо перехода к предыдущему треку,
// если прошло больше этого времени
const restartThreshold = 3 * time.Second

// Output описывает аудиовыход, которым управляет менеджер.
// Реализуется internal/player; экраны никогда не трогают аудиовыход напрямую.
type Output interface {
	Play(url string) error
	Pause()
	Resume()
	Seek(position time.Duration) error
	SetVolume(level float64)
	Position() time.Duration
	Duration() time.Duration
	Done() <-chan struct{}
	Stop()
}

// Manager владеет каталогом треков, текущим треком и транспортным
// состоянием. Сетевые операции не бросают ошибки наверх: неудача
// записывается в LastError, прежнее состояние сохраняется.
type Manager struct {
	client  *api.Client
	session *session.Manager
	bus     *events.Bus
	out     Output
	store   *storage.Store
	logger  *log.Logger

	// randIndex выбирает случайный индекс для режима shuffle
	randIndex func(n int) int

	mu        sync.Mutex
	tracks    []api.Track
	genre     string
	current   *api.Track
	isPlaying bool
	isRepeat  bool
	isShuffle bool
	volume    float64
	isLoading bool
	lastError string

	// selectSeq растет с каждым выбором трека: ответ детального запроса
	// применяется только если за время ожидания не выбрали другой трек
	selectSeq uint64
	// inFlight защищает от повторной отправки переключения
	// избранного/дизлайка по тому же треку
	inFlight map[int]bool
}

// NewManager создает новый менеджер воспроизведения
func NewManager(client *api.Client, sess *session.Manager, bus *events.Bus, out Output, store *storage.Store, logger *log.Logger) *Manager {
	volume := store.Volume()
	if volume <= 0 || volume > 1 {
		volume = 0.8
	}
	out.SetVolume(volume)

	return &Manager{
		client:    client,
		session:   sess,
		bus:       bus,
		out:       out,
		store:     store,
		logger:    logger,
		randIndex: rand.Intn,
		genre:     "All",
		volume:    volume,
		inFlight:  make(map[int]bool),
	}
}

// Tracks возвращает копию каталога треков
func (m *Manager) Tracks() []api.Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	tracks := make([]api.Track, len(m.tracks))
	copy(tracks, m.tracks)
	return tracks
}

// Current возвращает копию текущего трека (nil, если трек не выбран)
func (m *Manager) Current() *api.Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	track := *m.current
	return &track
}

// IsPlaying возвращает true, если воспроизведение не на паузе
func (m *Manager) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isPlaying
}

// IsRepeat возвращает состояние режима повтора
func (m *Manager) IsRepeat() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isRepeat
}

// IsShuffle возвращает состояние режима перемешивания
func (m *Manager) IsShuffle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isShuffle
}

// Volume возвращает текущую громкость
func (m *Manager) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// IsLoading возвращает true, пока загружается каталог
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isLoading
}

// LastError возвращает сообщение о последней ошибке операции
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// Genre возвращает активный фильтр жанра
func (m *Manager) Genre() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.genre
}

// CurrentTime возвращает текущую позицию воспроизведения в секундах
// (0, если трек не выбран)
func (m *Manager) CurrentTime() float64 {
	if m.Current() == nil {
		return 0
	}
	return m.out.Position().Seconds()
}

// Duration возвращает продолжительность текущего трека в секундах.
// Используется значение из каталога; если его нет, спрашиваем аудиовыход.
func (m *Manager) Duration() float64 {
	track := m.Current()
	if track == nil {
		return 0
	}
	if track.Duration > 0 {
		return track.Duration
	}
	return m.out.Duration().Seconds()
}

// LoadCatalog загружает каталог треков с необязательным фильтром жанра.
// Безопасен для повторных вызовов: каталог перечитывается и при смене
// фильтра, и при смене авторизации (социальные флаги зависят от сессии).
func (m *Manager) LoadCatalog(ctx context.Context, genre string) {
	m.mu.Lock()
	m.genre = genre
	m.isLoading = true
	m.lastError = ""
	m.mu.Unlock()

	tracks, err := m.client.ListTracks(ctx, genre, "")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.isLoading = false
	if err != nil {
		m.logger.Debug("ошибка загрузки каталога", "genre", genre, "error", err)
		m.lastError = "Не удалось загрузить треки. Попробуйте позже."
		return
	}
	m.tracks = tracks
}

// SearchCatalog загружает каталог по поисковому запросу
func (m *Manager) SearchCatalog(ctx context.Context, query string) {
	m.mu.Lock()
	m.isLoading = true
	m.lastError = ""
	genre := m.genre
	m.mu.Unlock()

	tracks, err := m.client.ListTracks(ctx, genre, query)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.isLoading = false
	if err != nil {
		m.logger.Debug("ошибка поиска", "query", query, "error", err)
		m.lastError = "Не удалось выполнить поиск. Попробуйте позже."
		return
	}
	m.tracks = tracks
}

// SelectTrack делает трек текущим и запускает воспроизведение.
// Трек устанавливается сразу (для отзывчивости интерфейса), детальная
// запись с флагами избранного подтягивается асинхронно. Если за время
// ожидания выбрали другой трек, устаревший ответ отбрасывается.
func (m *Manager) SelectTrack(ctx context.Context, track api.Track) {
	m.mu.Lock()
	shallow := track
	m.current = &shallow
	m.isPlaying = true
	m.selectSeq++
	seq := m.selectSeq
	m.mu.Unlock()

	// Сохраняем выбор для восстановления после перезапуска
	if err := m.store.SetCurrentTrackID(track.ID); err != nil {
		m.logger.Warn("не удалось сохранить выбранный трек", "error", err)
	}

	go m.startPlayback(ctx, track, seq)
}

// startPlayback запускает воспроизведение и обновляет детальную запись трека
func (m *Manager) startPlayback(ctx context.Context, track api.Track, seq uint64) {
	if !m.selectionCurrent(seq) {
		return
	}

	if err := m.out.Play(m.client.MediaURL(track.AudioPath)); err != nil {
		m.logger.Debug("ошибка запуска воспроизведения", "track_id", track.ID, "error", err)
		m.mu.Lock()
		if m.selectSeq == seq {
			m.isPlaying = false
			m.lastError = "Не удалось воспроизвести трек."
		}
		m.mu.Unlock()
		return
	}

	// Детальная запись нужна только авторизованной сессии:
	// без нее флаги избранного все равно не приходят
	if !m.session.IsAuthenticated() {
		return
	}

	detail, err := m.client.GetTrack(ctx, track.ID)
	if err != nil {
		m.logger.Debug("ошибка загрузки деталей трека", "track_id", track.ID, "error", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Устаревший ответ: за время запроса выбрали другой трек
	if m.selectSeq != seq {
		return
	}
	m.current = detail
}

// selectionCurrent проверяет, что выбор с данным номером все еще актуален
func (m *Manager) selectionCurrent(seq uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectSeq == seq
}

// RestoreSelection восстанавливает последний выбранный трек после
// перезапуска приложения. Воспроизведение не запускается.
func (m *Manager) RestoreSelection(ctx context.Context) {
	trackID := m.store.CurrentTrackID()
	if trackID == 0 {
		return
	}

	track, err := m.client.GetTrack(ctx, trackID)
	if err != nil {
		m.logger.Debug("не удалось восстановить выбранный трек", "track_id", trackID, "error", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = track
	m.selectSeq++
}

// TogglePlayPause переключает паузу. Без выбранного трека - no-op.
func (m *Manager) TogglePlayPause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return
	}

	m.isPlaying = !m.isPlaying
	if m.isPlaying {
		m.out.Resume()
	} else {
		m.out.Pause()
	}
}

// Seek перематывает текущий трек. Без выбранного трека - no-op.
func (m *Manager) Seek(position time.Duration) {
	if m.Current() == nil {
		return
	}
	if err := m.out.Seek(position); err != nil {
		m.logger.Debug("ошибка перемотки", "error", err)
	}
}

// SetVolume устанавливает громкость, ограничивая значение диапазоном [0, 1].
// Работает и без выбранного трека.
func (m *Manager) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}

	m.mu.Lock()
	m.volume = level
	m.mu.Unlock()

	m.out.SetVolume(level)
	if err := m.store.SetVolume(level); err != nil {
		m.logger.Warn("не удалось сохранить громкость", "error", err)
	}
}

// ToggleRepeat переключает режим повтора. Без выбранного трека - no-op.
func (m *Manager) ToggleRepeat() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return
	}
	m.isRepeat = !m.isRepeat
}

// ToggleShuffle переключает режим перемешивания. Без выбранного трека - no-op.
func (m *Manager) ToggleShuffle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return
	}
	m.isShuffle = !m.isShuffle
}

// PlayNext переходит к следующему треку каталога.
// В режиме shuffle выбирается равновероятный случайный трек
// (повтор текущего допустим).
func (m *Manager) PlayNext(ctx context.Context) {
	next, ok := m.pickNeighbor(1)
	if !ok {
		return
	}
	m.SelectTrack(ctx, next)
}

// PlayPrevious переходит к предыдущему треку. Если от начала трека прошло
// больше трех секунд, вместо перехода трек перезапускается с начала.
func (m *Manager) PlayPrevious(ctx context.Context) {
	if m.Current() != nil && m.out.Position() > restartThreshold {
		if err := m.out.Seek(0); err != nil {
			m.logger.Debug("ошибка перемотки на начало", "error", err)
		}
		return
	}

	prev, ok := m.pickNeighbor(-1)
	if !ok {
		return
	}
	m.SelectTrack(ctx, prev)
}

// pickNeighbor возвращает соседний трек каталога со сдвигом offset,
// с закольцовыванием списка. В режиме shuffle возвращает случайный трек.
func (m *Manager) pickNeighbor(offset int) (api.Track, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.tracks) == 0 {
		return api.Track{}, false
	}

	if m.isShuffle {
		return m.tracks[m.randIndex(len(m.tracks))], true
	}

	index := 0
	if m.current != nil {
		for i, track := range m.tracks {
			if track.ID == m.current.ID {
				index = i
				break
			}
		}
	}

	n := len(m.tracks)
	return m.tracks[((index+offset)%n+n)%n], true
}

// Run обрабатывает сигналы естественного завершения трека:
// в режиме повтора трек начинается заново, иначе включается следующий.
// Блокируется до отмены контекста.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.out.Done():
			if m.IsRepeat() {
				track := m.Current()
				if track == nil {
					continue
				}
				if err := m.out.Play(m.client.MediaURL(track.AudioPath)); err != nil {
					m.logger.Debug("ошибка повтора трека", "error", err)
				}
			} else {
				m.PlayNext(ctx)
			}
		}
	}
}

// ErrNotAuthenticated возвращается операциями, требующими входа
var ErrNotAuthenticated = errors.New("требуется авторизация")

// ToggleFavorite переключает флаг избранного для трека.
// Сначала запрашивается актуальное состояние флага, затем выполняется
// обратная операция, после чего обновленные флаги записываются в каталог
// и в текущий трек, а всем экранам рассылается сигнал об изменении.
func (m *Manager) ToggleFavorite(ctx context.Context, trackID int) error {
	if !m.session.IsAuthenticated() {
		m.setError("Войдите, чтобы добавлять треки в избранное.")
		return ErrNotAuthenticated
	}
	if !m.beginToggle(trackID) {
		// Предыдущее переключение по этому треку еще не завершилось
		return nil
	}
	defer m.endToggle(trackID)
	m.setError("")

	track, err := m.client.GetTrack(ctx, trackID)
	if err != nil {
		m.setError("Не удалось обновить избранное.")
		return err
	}

	if track.Favorited() {
		err = m.client.RemoveFavorite(ctx, trackID)
	} else {
		err = m.client.AddFavorite(ctx, trackID)
	}
	if err != nil {
		m.logger.Debug("ошибка переключения избранного", "track_id", trackID, "error", err)
		m.setError("Не удалось обновить избранное.")
		return err
	}

	m.syncLikedPlaylist(ctx, track, !track.Favorited())

	if err := m.refreshTrackFlags(ctx, trackID); err != nil {
		m.setError("Не удалось обновить избранное.")
		return err
	}

	m.bus.Publish(events.Signal{Kind: events.FavoritesChanged, TrackID: trackID})
	return nil
}

// ToggleDislike переключает флаг дизлайка для трека.
// Дизлайк снимает флаг избранного (сервер поддерживает взаимное
// исключение), поэтому дополнительно рассылается и сигнал об изменении
// избранного. Обратное не верно: избранное дизлайк не снимает.
func (m *Manager) ToggleDislike(ctx context.Context, trackID int) error {
	if !m.session.IsAuthenticated() {
		m.setError("Войдите, чтобы ставить дизлайки.")
		return ErrNotAuthenticated
	}
	if !m.beginToggle(trackID) {
		return nil
	}
	defer m.endToggle(trackID)
	m.setError("")

	track, err := m.client.GetTrack(ctx, trackID)
	if err != nil {
		m.setError("Не удалось обновить дизлайк.")
		return err
	}

	wasFavorited := track.Favorited()

	if track.Disliked() {
		err = m.client.RemoveDislike(ctx, trackID)
	} else {
		err = m.client.AddDislike(ctx, trackID)
	}
	if err != nil {
		m.logger.Debug("ошибка переключения дизлайка", "track_id", trackID, "error", err)
		m.setError("Не удалось обновить дизлайк.")
		return err
	}

	if err := m.refreshTrackFlags(ctx, trackID); err != nil {
		m.setError("Не удалось обновить дизлайк.")
		return err
	}

	m.bus.Publish(events.Signal{Kind: events.DislikesChanged, TrackID: trackID})
	if wasFavorited {
		// Дизлайк снял трек с избранного: экраны избранного тоже
		// должны обновиться
		m.bus.Publish(events.Signal{Kind: events.FavoritesChanged, TrackID: trackID})
	}
	return nil
}

// refreshTrackFlags перечитывает детальную запись трека и записывает
// свежие флаги в каталог и в текущий трек. Записи заменяются целиком,
// а не мутируются: копии, которые держат экраны, остаются нетронутыми.
func (m *Manager) refreshTrackFlags(ctx context.Context, trackID int) error {
	updated, err := m.client.GetTrack(ctx, trackID)
	if err != nil {
		m.logger.Debug("ошибка обновления флагов трека", "track_id", trackID, "error", err)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.tracks {
		if m.tracks[i].ID == trackID {
			refreshed := m.tracks[i]
			refreshed.IsFavorited = updated.IsFavorited
			refreshed.IsDisliked = updated.IsDisliked
			m.tracks[i] = refreshed
			break
		}
	}

	if m.current != nil && m.current.ID == trackID {
		fresh := *updated
		m.current = &fresh
	}
	return nil
}

// syncLikedPlaylist поддерживает плейлист "Мне нравится" в соответствии
// с избранным. Все ошибки здесь не фатальны: отсутствие плейлиста или
// уже добавленный трек молча пропускаются (поведение не подтверждено
// контрактом сервера, сохранено как есть).
func (m *Manager) syncLikedPlaylist(ctx context.Context, track *api.Track, added bool) {
	playlists, err := m.client.ListPlaylists(ctx)
	if err != nil {
		m.logger.Debug("ошибка загрузки плейлистов", "error", err)
		return
	}

	var liked *api.Playlist
	for i := range playlists {
		if playlists[i].Name == likedPlaylistName {
			liked = &playlists[i]
			break
		}
	}

	if !added {
		if liked == nil {
			return
		}
		if err := m.client.RemoveTrackFromPlaylist(ctx, liked.ID, track.ID); err != nil {
			m.logger.Debug("трек отсутствует в плейлисте или ошибка удаления", "error", err)
		}
		return
	}

	if liked == nil {
		liked, err = m.client.CreatePlaylist(ctx, api.PlaylistCreate{
			Name:        likedPlaylistName,
			Description: "Автоматический плейлист избранных треков",
			IsPublic:    true,
		})
		if err != nil {
			m.logger.Debug("ошибка создания плейлиста избранного", "error", err)
			return
		}
	}

	if err := m.client.AddTrackToPlaylist(ctx, liked.ID, track.ID, nil); err != nil {
		m.logger.Debug("трек уже в плейлисте или ошибка добавления", "error", err)
	}
}

// beginToggle ставит отметку о запросе в полете по треку.
// Возвращает false, если переключение по этому треку уже выполняется.
func (m *Manager) beginToggle(trackID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight[trackID] {
		return false
	}
	m.inFlight[trackID] = true
	return true
}

// endToggle снимает отметку о запросе в полете
func (m *Manager) endToggle(trackID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, trackID)
}

// setError записывает сообщение об ошибке в состояние
func (m *Manager) setError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = msg
}
