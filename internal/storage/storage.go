// Package storage содержит реализации долговременного хранилища сессии клиента.
// Каждое хранилище это плоский набор строковых ключей (token, user); выбор
// реализации задаётся в конфиге (session_store.driver).
package storage

import "errors"

// ErrUnknownDriver неизвестное значение session_store.driver.
var ErrUnknownDriver = errors.New("unknown session store driver")

const (
	// DriverFile JSON-файл на диске.
	DriverFile = "file"
	// DriverRedis ключи в redis.
	DriverRedis = "redis"
	// DriverMemory хранение только в памяти процесса.
	DriverMemory = "memory"
)
