package client

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Session es el estado de sesión del cliente: token emitido por el
// servidor más las claims que la UI necesita sin decodificar el token.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Store persiste la sesión entre ejecuciones del cliente.
type Store interface {
	Load() (Session, bool, error)
	Save(Session) error
	Clear() error
}

// FileStore guarda la sesión como JSON en un archivo local.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (fs *FileStore) Load() (Session, bool, error) {
	raw, err := os.ReadFile(fs.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("session store: read: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, false, fmt.Errorf("session store: decode: %w", err)
	}
	if strings.TrimSpace(s.Token) == "" {
		return Session{}, false, nil
	}
	return s, true, nil
}

func (fs *FileStore) Save(s Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session store: encode: %w", err)
	}
	if dir := filepath.Dir(fs.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("session store: mkdir: %w", err)
		}
	}
	// El token es una credencial: solo lectura del dueño.
	if err := os.WriteFile(fs.Path, b, 0o600); err != nil {
		return fmt.Errorf("session store: write: %w", err)
	}
	return nil
}

func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session store: clear: %w", err)
	}
	return nil
}

// Listener recibe la sesión actual tras login, o active=false tras logout.
type Listener func(s Session, active bool)

// SessionManager mantiene la sesión vigente y notifica cambios a la UI.
// No hay estado global: quien necesita la sesión recibe el manager.
type SessionManager struct {
	mu      sync.Mutex
	store   Store
	current Session
	active  bool

	nextSub   int
	listeners map[int]Listener

	now func() time.Time
}

func NewSessionManager(store Store) *SessionManager {
	return &SessionManager{
		store:     store,
		listeners: map[int]Listener{},
		now:       time.Now,
	}
}

// Current retorna la sesión vigente (ok=false si no hay sesión).
func (m *SessionManager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.active
}

// Token retorna el token vigente o "" si no hay sesión.
func (m *SessionManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return ""
	}
	return m.current.Token
}

// Set fija la sesión, la persiste y notifica.
func (m *SessionManager) Set(s Session) error {
	m.mu.Lock()
	m.current = s
	m.active = true
	subs := m.snapshotListeners()
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Save(s); err != nil {
			return err
		}
	}
	for _, fn := range subs {
		fn(s, true)
	}
	return nil
}

// Clear borra la sesión (logout) y notifica.
func (m *SessionManager) Clear() error {
	m.mu.Lock()
	m.current = Session{}
	m.active = false
	subs := m.snapshotListeners()
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Clear(); err != nil {
			return err
		}
	}
	for _, fn := range subs {
		fn(Session{}, false)
	}
	return nil
}

// Subscribe registra un listener y retorna la función para darse de baja.
func (m *SessionManager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.listeners[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Load rehidrata la sesión desde el store al arrancar. Revalida las
// claims guardadas localmente (firma aparte, expiración incluida) sin
// contactar al servidor; una sesión vencida o corrupta se descarta.
func (m *SessionManager) Load() (Session, bool, error) {
	if m.store == nil {
		return Session{}, false, nil
	}

	s, ok, err := m.store.Load()
	if err != nil {
		return Session{}, false, err
	}
	if !ok {
		return Session{}, false, nil
	}

	claims, err := decodeTokenClaims(s.Token)
	if err != nil || claims.expired(m.now()) {
		_ = m.store.Clear()
		return Session{}, false, nil
	}

	// Las claims del token mandan sobre lo guardado al lado.
	if claims.Subject != "" {
		s.UserID = claims.Subject
	}
	if claims.Email != "" {
		s.Email = claims.Email
	}
	if claims.Role != "" {
		s.Role = claims.Role
	}

	m.mu.Lock()
	m.current = s
	m.active = true
	subs := m.snapshotListeners()
	m.mu.Unlock()

	for _, fn := range subs {
		fn(s, true)
	}
	return s, true, nil
}

func (m *SessionManager) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		out = append(out, fn)
	}
	return out
}

type tokenClaims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Exp     int64  `json:"exp"`
}

func (c tokenClaims) expired(now time.Time) bool {
	return c.Exp > 0 && now.Unix() >= c.Exp
}

// decodeTokenClaims lee el payload del JWT sin verificar la firma:
// la verificación real la hace el servidor en cada request.
func decodeTokenClaims(token string) (tokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return tokenClaims{}, errors.New("malformed token")
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return tokenClaims{}, fmt.Errorf("decode claims: %w", err)
	}

	var c tokenClaims
	if err := json.Unmarshal(raw, &c); err != nil {
		return tokenClaims{}, fmt.Errorf("parse claims: %w", err)
	}
	if c.Subject == "" {
		return tokenClaims{}, errors.New("token without subject")
	}
	return c, nil
}
