package ports

import "context"

// KeyValueStorage — порт персистентного клиентского хранилища
// (аналог localStorage). Реализуется файловым и redis адаптерами.
type KeyValueStorage interface {
	// Get возвращает значение по ключу. Второй результат false если
	// ключ никогда не записывался — это не ошибка.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set пишет значение по ключу, перезаписывая прежнее
	Set(ctx context.Context, key, value string) error
}
