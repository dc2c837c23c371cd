// Package memstore is an in-process record store implementing every domain
// repository. Handler and use case tests run against it.
package memstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/audit"
	domainClient "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/client"
	domainIntake "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/intake"
	domainMembership "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/membership"
	domainSession "github.com/BruksfildServices01/dogtrainer-admin/internal/domain/session"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

type Store struct {
	mu sync.Mutex

	clients        []models.Client
	sessions       []models.Session
	memberships    []models.Membership
	briefs         []models.BehaviouralBrief
	questionnaires []models.BehaviourQuestionnaire
	nextID         uint

	// Failure injection.
	ReadErr  error
	WriteErr error
	LinkErr  map[uint]error

	// Write counters.
	Links   int
	Creates int
}

func New() *Store {
	return &Store{LinkErr: map[uint]error{}}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) stamp(t *time.Time, id uint) {
	if t.IsZero() {
		*t = epoch.Add(time.Duration(id) * time.Minute)
	}
}

// ======================================================
// SEEDING
// ======================================================

func (s *Store) AddClient(c models.Client) models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == 0 {
		c.ID = s.id()
	} else if c.ID > s.nextID {
		s.nextID = c.ID
	}
	s.stamp(&c.CreatedAt, c.ID)
	s.clients = append(s.clients, c)
	return c
}

func (s *Store) AddSession(ss models.Session) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ss.ID == 0 {
		ss.ID = s.id()
	} else if ss.ID > s.nextID {
		s.nextID = ss.ID
	}
	s.sessions = append(s.sessions, ss)
	return ss
}

func (s *Store) AddMembership(m models.Membership) models.Membership {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.id()
	s.memberships = append(s.memberships, m)
	return m
}

// ======================================================
// SNAPSHOTS
// ======================================================

func (s *Store) Clients() []models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Client(nil), s.clients...)
}

func (s *Store) Client(id uint) (models.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return models.Client{}, false
}

func (s *Store) Sessions() []models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Session(nil), s.sessions...)
}

func (s *Store) Memberships() []models.Membership {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Membership(nil), s.memberships...)
}

// ======================================================
// CLIENTS
// ======================================================

func (s *Store) source() *domainClient.MemorySource {
	return domainClient.NewMemorySource(append([]models.Client(nil), s.clients...))
}

func (s *Store) ClientsByEmail(ctx context.Context, email string) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return s.source().ClientsByEmail(ctx, email)
}

func (s *Store) ClientsByPhone(ctx context.Context, phone string) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return s.source().ClientsByPhone(ctx, phone)
}

func (s *Store) ClientsByFirstName(ctx context.Context, fragment string) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return s.source().ClientsByFirstName(ctx, fragment)
}

func (s *Store) ClientsByDogName(ctx context.Context, dogName string) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return s.source().ClientsByDogName(ctx, dogName)
}

func (s *Store) ListClients(_ context.Context) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return append([]models.Client(nil), s.clients...), nil
}

func (s *Store) SearchClients(_ context.Context, query string) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Client
	for _, c := range s.clients {
		hay := strings.ToLower(strings.Join([]string{c.OwnerFirstName, c.OwnerLastName, c.Email(), c.DogName}, " "))
		if q == "" || strings.Contains(hay, q) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) GetClient(_ context.Context, id uint) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	for _, c := range s.clients {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domainClient.ErrClientNotFound
}

func (s *Store) CreateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	c.ID = s.id()
	s.stamp(&c.CreatedAt, c.ID)
	c.UpdatedAt = c.CreatedAt
	s.clients = append(s.clients, *c)
	s.Creates++
	return nil
}

func (s *Store) UpdateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	for i := range s.clients {
		if s.clients[i].ID == c.ID {
			s.clients[i] = *c
			return nil
		}
	}
	return domainClient.ErrClientNotFound
}

func (s *Store) DeleteClient(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	for i := range s.clients {
		if s.clients[i].ID != id {
			continue
		}
		s.clients = append(s.clients[:i], s.clients[i+1:]...)
		for j := range s.sessions {
			if s.sessions[j].ClientID != nil && *s.sessions[j].ClientID == id {
				s.sessions[j].ClientID = nil
			}
		}
		return nil
	}
	return domainClient.ErrClientNotFound
}

func (s *Store) SetMembership(_ context.Context, id uint, isMember bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	for i := range s.clients {
		if s.clients[i].ID == id {
			s.clients[i].IsMember = isMember
			return nil
		}
	}
	return domainClient.ErrClientNotFound
}

// ======================================================
// SESSIONS
// ======================================================

func (s *Store) ListSessions(_ context.Context) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return append([]models.Session(nil), s.sessions...), nil
}

func (s *Store) ListUnlinkedSessions(_ context.Context) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	var out []models.Session
	for _, ss := range s.sessions {
		if ss.ClientID == nil {
			out = append(out, ss)
		}
	}
	return out, nil
}

func (s *Store) ListSessionsForClient(_ context.Context, clientID uint) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	var out []models.Session
	for _, ss := range s.sessions {
		if ss.ClientID != nil && *ss.ClientID == clientID {
			out = append(out, ss)
		}
	}
	return out, nil
}

func (s *Store) LinkSession(_ context.Context, link domainSession.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.LinkErr[link.SessionID]; err != nil {
		return err
	}
	for i := range s.sessions {
		if s.sessions[i].ID == link.SessionID {
			id := link.ClientID
			s.sessions[i].ClientID = &id
			s.sessions[i].ClientName = link.ClientName
			s.sessions[i].DogName = link.DogName
			s.Links++
			return nil
		}
	}
	return ErrSessionNotFound
}

func (s *Store) Inspect(_ context.Context) (*domainSession.Inspection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	out := &domainSession.Inspection{
		Tables:       []domainSession.TableInfo{},
		SessionCount: int64(len(s.sessions)),
		ClientCount:  int64(len(s.clients)),
	}
	for _, ss := range s.sessions {
		if ss.ClientID == nil {
			out.UnlinkedSessions++
		}
		if strings.TrimSpace(ss.Email) != "" {
			out.SessionsWithEmail++
		}
	}
	return out, nil
}

// ======================================================
// MEMBERSHIPS
// ======================================================

func (s *Store) listMemberships(keep func(models.Membership) bool) ([]models.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	var out []models.Membership
	for _, m := range s.memberships {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// day compares calendar dates the way the date column does.
func day(t time.Time) string {
	return t.Format("2006-01-02")
}

func (s *Store) ListMemberships(_ context.Context) ([]models.Membership, error) {
	return s.listMemberships(func(models.Membership) bool { return true })
}

func (s *Store) ListMembershipsSince(_ context.Context, since time.Time) ([]models.Membership, error) {
	return s.listMemberships(func(m models.Membership) bool { return day(m.Date) >= day(since) })
}

func (s *Store) ListMembershipsBetween(_ context.Context, from, to time.Time) ([]models.Membership, error) {
	return s.listMemberships(func(m models.Membership) bool {
		return day(m.Date) >= day(from) && day(m.Date) < day(to)
	})
}

func (s *Store) ListMembershipsForEmail(_ context.Context, email string) ([]models.Membership, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.listMemberships(func(m models.Membership) bool {
		return strings.ToLower(strings.TrimSpace(m.Email)) == email
	})
}

func (s *Store) CreateMembership(_ context.Context, m *models.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	m.ID = s.id()
	s.memberships = append(s.memberships, *m)
	return nil
}

// ======================================================
// INTAKE
// ======================================================

func (s *Store) CreateBrief(_ context.Context, b *models.BehaviouralBrief) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	b.ID = s.id()
	s.briefs = append(s.briefs, *b)
	return nil
}

func (s *Store) CreateQuestionnaire(_ context.Context, q *models.BehaviourQuestionnaire) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	q.ID = s.id()
	s.questionnaires = append(s.questionnaires, *q)
	return nil
}

func (s *Store) GetBrief(_ context.Context, id uint) (*models.BehaviouralBrief, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.briefs {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, domainIntake.ErrDocumentNotFound
}

func (s *Store) GetQuestionnaire(_ context.Context, id uint) (*models.BehaviourQuestionnaire, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questionnaires {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, domainIntake.ErrDocumentNotFound
}

// ======================================================
// HISTORY
// ======================================================

// Recorder keeps dispatched events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *Recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) Events() []audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Event(nil), r.events...)
}

func (r *Recorder) Actions() []string {
	var out []string
	for _, ev := range r.Events() {
		out = append(out, ev.Action)
	}
	return out
}

var (
	_ domainClient.Repository     = (*Store)(nil)
	_ domainSession.Repository    = (*Store)(nil)
	_ domainMembership.Repository = (*Store)(nil)
	_ domainIntake.Repository     = (*Store)(nil)
	_ audit.Recorder              = (*Recorder)(nil)
)
