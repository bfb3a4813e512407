// Package filestore хранит ключи сессии в JSON-файле, аналог localStorage
// для одного процесса клиента.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store файловое хранилище. Файл перечитывается на каждую операцию,
// запись атомарная через временный файл и rename.
type Store struct {
	mu   sync.Mutex
	path string
}

// New создаёт хранилище; каталог файла создаётся при необходимости.
func New(path string) (*Store, error) {
	const op = "filestore.New"
	if path == "" {
		return nil, fmt.Errorf("%s: empty path", op)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{path: path}, nil
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	entries := map[string]string{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) save(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Get возвращает значение ключа; found=false, если ключа нет.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	const op = "filestore.Get"
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	val, ok := entries[key]
	return val, ok, nil
}

// Set сохраняет значение ключа.
func (s *Store) Set(_ context.Context, key, value string) error {
	const op = "filestore.Set"
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		// испорченный файл перезаписывается
		entries = map[string]string{}
	}
	entries[key] = value
	if err := s.save(entries); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет ключ. Отсутствие ключа или файла ошибкой не считается.
func (s *Store) Delete(_ context.Context, key string) error {
	const op = "filestore.Delete"
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		entries = map[string]string{}
	} else if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	if len(entries) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	if err := s.save(entries); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
