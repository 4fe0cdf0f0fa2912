// Package navigation monta o menu lateral de cada perfil a partir de tabelas estáticas
package navigation

import (
	_ "embed"
	"fmt"

	"github.com/vfg2006/crm-api/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed navigation.yaml
var defaultTables []byte

type section struct {
	domain.NavSection `yaml:",inline"`

	ID string `yaml:"id"`
}

type tables struct {
	Sections []section           `yaml:"sections"`
	Roles    map[string][]string `yaml:"roles"`
}

type Navigator interface {
	ForRole(roleID int) (*domain.Navigation, error)
}

type Service struct {
	sections []section
	byID     map[string]domain.NavSection
	roles    map[string][]string
}

// NewService carrega as tabelas embutidas
func NewService() (*Service, error) {
	return Parse(defaultTables)
}

// Parse valida que todo perfil referencia apenas seções existentes
func Parse(raw []byte) (*Service, error) {
	var t tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("erro ao ler tabelas de navegação: %w", err)
	}

	byID := make(map[string]domain.NavSection, len(t.Sections))
	for _, s := range t.Sections {
		if _, dup := byID[s.ID]; dup {
			return nil, fmt.Errorf("seção de navegação duplicada: %s", s.ID)
		}
		byID[s.ID] = s.NavSection
	}

	for role, ids := range t.Roles {
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				return nil, fmt.Errorf("perfil %s referencia seção inexistente %s", role, id)
			}
		}
	}

	return &Service{sections: t.Sections, byID: byID, roles: t.Roles}, nil
}

func (s *Service) ForRole(roleID int) (*domain.Navigation, error) {
	if !domain.ValidRole(roleID) {
		return nil, fmt.Errorf("perfil desconhecido: %d", roleID)
	}

	role := domain.RoleName(roleID)
	nav := &domain.Navigation{Role: role, Sections: []domain.NavSection{}}

	if roleID == domain.RoleAdmin {
		for _, sec := range s.sections {
			nav.Sections = append(nav.Sections, sec.NavSection)
		}
		return nav, nil
	}

	for _, id := range s.roles[role] {
		nav.Sections = append(nav.Sections, s.byID[id])
	}
	return nav, nil
}
