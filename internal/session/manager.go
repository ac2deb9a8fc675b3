// Package session holds per-visitor UI state: the colour theme, which
// survives restarts, and the admin flag, which deliberately does not.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/ankalaev/animanga-shop/pkg/kv"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSakura Theme = "sakura"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSakura:
		return true
	}
	return false
}

var ErrUnknownTheme = errors.New("unknown theme")

// AdminSecret is the word that unlocks the order management console.
const AdminSecret = "zov"

type Manager struct {
	persistent kv.Store
	ephemeral  kv.Store
}

// NewManager wires the persistent store for durable preferences and a
// separate ephemeral store for the admin flag.
func NewManager(persistent, ephemeral kv.Store) *Manager {
	return &Manager{
		persistent: persistent,
		ephemeral:  ephemeral,
	}
}

// Theme returns the saved theme, falling back to light when nothing is
// saved or the saved value is unreadable.
func (m *Manager) Theme(ctx context.Context) Theme {
	raw, err := m.persistent.Load(ctx, kv.KeyTheme)
	if err != nil {
		return ThemeLight
	}
	t := Theme(raw)
	if !t.Valid() {
		return ThemeLight
	}
	return t
}

func (m *Manager) SetTheme(ctx context.Context, t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownTheme, t)
	}
	return m.persistent.Save(ctx, kv.KeyTheme, []byte(t))
}

// AdminMode reports whether the admin console is unlocked this session.
func (m *Manager) AdminMode(ctx context.Context) bool {
	raw, err := m.ephemeral.Load(ctx, kv.KeyAdminMode)
	if err != nil {
		return false
	}
	return string(raw) == "true"
}

// TryUnlock enables admin mode when the secret word matches, and reports
// whether it did.
func (m *Manager) TryUnlock(ctx context.Context, word string) (bool, error) {
	if word != AdminSecret {
		return false, nil
	}
	if err := m.ephemeral.Save(ctx, kv.KeyAdminMode, []byte("true")); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Manager) DisableAdmin(ctx context.Context) error {
	return m.ephemeral.Delete(ctx, kv.KeyAdminMode)
}
