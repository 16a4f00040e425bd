package memory

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/riskibarqy/draft-league/internal/domain/player"
	"gopkg.in/yaml.v3"
)

//go:embed players.yaml
var seedPlayersYAML []byte

type playerCatalogFile struct {
	Players []playerCatalogRow `yaml:"players"`
}

type playerCatalogRow struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Position string `yaml:"position"`
	ProTeam  string `yaml:"pro_team"`
	Rank     int    `yaml:"rank"`
	Active   *bool  `yaml:"active"`
}

// SeedPlayers returns the bundled player catalog.
func SeedPlayers() ([]player.Player, error) {
	return LoadPlayers(bytes.NewReader(seedPlayersYAML))
}

// LoadPlayers decodes a YAML player catalog. Players default to active.
func LoadPlayers(r io.Reader) ([]player.Player, error) {
	var file playerCatalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode player catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Players))
	out := make([]player.Player, 0, len(file.Players))
	for i, row := range file.Players {
		pos, err := player.ParsePosition(row.Position)
		if err != nil {
			return nil, fmt.Errorf("player catalog row %d: %w", i+1, err)
		}
		p := player.Player{
			ID:       row.ID,
			Name:     row.Name,
			Position: pos,
			ProTeam:  row.ProTeam,
			Rank:     row.Rank,
			Active:   row.Active == nil || *row.Active,
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("player catalog row %d: %w", i+1, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("player catalog row %d: duplicate id %s", i+1, p.ID)
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}
