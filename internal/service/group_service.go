package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
)

// groupCacheTTL время жизни результатов поиска групп
const groupCacheTTL = time.Hour

var groupNamePattern = regexp.MustCompile(`^[а-яё]{2,}[0-9]{3,}$`)

// GroupSearcher поиск групп на портале
type GroupSearcher interface {
	SearchGroups(ctx context.Context, query string) ([]model.GroupResult, error)
}

type GroupService struct {
	portal GroupSearcher
	cache  *ristretto.Cache
	logger *zap.Logger
}

func NewGroupService(portal GroupSearcher, logger *zap.Logger) (*GroupService, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 12,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create group cache: %w", err)
	}

	return &GroupService{
		portal: portal,
		cache:  cache,
		logger: logger,
	}, nil
}

// Close останавливает фоновые горутины кэша
func (s *GroupService) Close() {
	s.cache.Close()
}

// NormalizeGroupName убирает пробелы и дефисы, приводит к нижнему регистру
func NormalizeGroupName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// ValidGroupName проверяет, что группа записана кириллицей и цифрами: ИКС-432
func ValidGroupName(name string) bool {
	return groupNamePattern.MatchString(NormalizeGroupName(name))
}

// HyphenateGroupName вставляет дефис между буквами и цифрами: икс432 -> икс-432
func HyphenateGroupName(name string) string {
	runes := []rune(name)
	for i := 1; i < len(runes); i++ {
		if unicode.IsDigit(runes[i]) && unicode.IsLetter(runes[i-1]) {
			return string(runes[:i]) + "-" + string(runes[i:])
		}
	}
	return name
}

// MergeGroups объединяет списки без повторов id, сохраняя порядок первого появления
func MergeGroups(lists ...[]model.GroupResult) []model.GroupResult {
	seen := make(map[model.GroupID]struct{})
	var merged []model.GroupResult

	for _, list := range lists {
		for _, g := range list {
			if _, ok := seen[g.ID]; ok {
				continue
			}
			seen[g.ID] = struct{}{}
			merged = append(merged, g)
		}
	}
	return merged
}

// FindGroupsByName ищет группу по названию в двух вариантах написания
func (s *GroupService) FindGroupsByName(ctx context.Context, name string) ([]model.GroupResult, error) {
	normalized := NormalizeGroupName(name)
	if !groupNamePattern.MatchString(normalized) {
		return nil, ErrInvalidGroupName
	}

	if cached, found := s.cache.Get(normalized); found {
		return cached.([]model.GroupResult), nil
	}

	plain, err := s.portal.SearchGroups(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("search groups %q: %w", normalized, err)
	}

	hyphenated, err := s.portal.SearchGroups(ctx, HyphenateGroupName(normalized))
	if err != nil {
		return nil, fmt.Errorf("search groups %q: %w", HyphenateGroupName(normalized), err)
	}

	groups := MergeGroups(plain, hyphenated)

	s.logger.Debug("Groups found",
		zap.String("query", normalized),
		zap.Int("count", len(groups)),
	)

	if len(groups) > 0 {
		s.cache.SetWithTTL(normalized, groups, 1, groupCacheTTL)
	}

	return groups, nil
}
