package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

// Criteria holds the identifying facts an inbound event or an operator may
// know about a client. Empty fields are skipped.
type Criteria struct {
	Email   string
	Phone   string
	Name    string
	DogName string
}

const (
	MatchedByEmail   = "email"
	MatchedByPhone   = "phone"
	MatchedByName    = "name"
	MatchedByDogName = "dog_name"
)

// Strategy is one link of the fallback chain.
type Strategy struct {
	Name string
	Key  func(Criteria) string
	Find func(ctx context.Context, src Source, key string) ([]models.Client, error)
}

func DefaultStrategies() []Strategy {
	return []Strategy{
		{
			Name: MatchedByEmail,
			Key:  func(c Criteria) string { return strings.TrimSpace(c.Email) },
			Find: func(ctx context.Context, src Source, key string) ([]models.Client, error) {
				return src.ClientsByEmail(ctx, key)
			},
		},
		{
			Name: MatchedByPhone,
			Key:  func(c Criteria) string { return strings.TrimSpace(c.Phone) },
			Find: func(ctx context.Context, src Source, key string) ([]models.Client, error) {
				return src.ClientsByPhone(ctx, key)
			},
		},
		{
			Name: MatchedByName,
			Key:  func(c Criteria) string { return strings.TrimSpace(c.Name) },
			Find: func(ctx context.Context, src Source, key string) ([]models.Client, error) {
				return src.ClientsByFirstName(ctx, key)
			},
		},
		{
			Name: MatchedByDogName,
			Key:  func(c Criteria) string { return strings.TrimSpace(c.DogName) },
			Find: func(ctx context.Context, src Source, key string) ([]models.Client, error) {
				return src.ClientsByDogName(ctx, key)
			},
		},
	}
}

// EmailOnly is the chain used by webhook ingest.
func EmailOnly() []Strategy {
	return DefaultStrategies()[:1]
}

type Match struct {
	Client    *models.Client
	MatchedBy string
}

type Matcher struct {
	src        Source
	strategies []Strategy
}

func NewMatcher(src Source, strategies ...Strategy) *Matcher {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Matcher{src: src, strategies: strategies}
}

// Match walks the chain and stops at the first strategy with at least one
// candidate. No match is (nil, nil); a source failure is an error.
func (m *Matcher) Match(ctx context.Context, c Criteria) (*models.Client, error) {
	res, err := m.MatchDetailed(ctx, c)
	if err != nil || res == nil {
		return nil, err
	}
	return res.Client, nil
}

func (m *Matcher) MatchDetailed(ctx context.Context, c Criteria) (*Match, error) {
	for _, s := range m.strategies {
		key := s.Key(c)
		if key == "" {
			continue
		}

		candidates, err := s.Find(ctx, m.src, key)
		if err != nil {
			return nil, fmt.Errorf("match client by %s: %w", s.Name, err)
		}

		if best := MostRecent(candidates); best != nil {
			return &Match{Client: best, MatchedBy: s.Name}, nil
		}
	}
	return nil, nil
}

// MostRecent picks the latest created client, highest id on ties. Every path
// that has to choose one client among several uses this.
func MostRecent(candidates []models.Client) *models.Client {
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if newer(c, best) {
			best = c
		}
	}
	return &best
}

func newer(a, b models.Client) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// EmailIndex keys clients by lower-cased email. Duplicate emails resolve
// through MostRecent, same as single-record lookups.
func EmailIndex(clients []models.Client) map[string]models.Client {
	idx := make(map[string]models.Client, len(clients))
	for _, c := range clients {
		key := strings.ToLower(strings.TrimSpace(c.Email()))
		if key == "" {
			continue
		}
		if cur, ok := idx[key]; ok && !newer(c, cur) {
			continue
		}
		idx[key] = c
	}
	return idx
}
