package roster

import (
	"fmt"
	"os"

	"github.com/arnavshah/standup-api-go/pkg/rotation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File is the YAML roster format:
//
//	teams:
//	  AI: [Gus Price, Jaime Riley]
//	  Core: [Phil Gray]
//	absent: [Phil Gray]
type File struct {
	Teams  rotation.Roster `yaml:"teams"`
	Absent []string        `yaml:"absent"`
}

// Parse decodes and validates a YAML roster
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if f.Teams == nil {
		f.Teams = rotation.Roster{}
	}
	if err := f.Teams.Validate(); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	return &f, nil
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}
	return Parse(data)
}

// Seed imports the members of f when the repository holds none yet.
// It returns how many members were added.
func Seed(logger *zap.SugaredLogger, repo Repo, f *File) (int, error) {
	existing, err := repo.ListMembers()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		logger.Debugw("roster already populated, skipping seed", "members", len(existing))
		return 0, nil
	}

	added := 0
	for _, team := range f.Teams.Teams() {
		for _, name := range f.Teams[team] {
			if _, err := repo.AddMember(name, team); err != nil {
				return added, fmt.Errorf("seed %q: %w", name, err)
			}
			added++
		}
	}

	logger.Infow("seeded roster", "members", added)
	return added, nil
}
