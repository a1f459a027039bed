package generate

import (
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/pelletier/go-toml/v2"

	"github.com/gibfahn/dot/pkg/errors"
	"github.com/gibfahn/dot/pkg/logging"
	"github.com/gibfahn/dot/pkg/types"
)

// preludeComment marks generated files so hand edits stand out in review
const preludeComment = "# Generated by `dot generate git`, edits will be overwritten.\n\n"

// GitTask describes one git generation run
type GitTask struct {
	// Path is the TOML file the snapshot is written to
	Path string
	// SearchPaths are the roots scanned for git repositories
	SearchPaths []string
	// Excludes skips any repository whose path contains one of these
	// substrings
	Excludes []string
}

// RepoConfig is the serialized form of one repository
type RepoConfig struct {
	Path    string         `toml:"path"`
	Branch  string         `toml:"branch,omitempty"`
	Remotes []RemoteConfig `toml:"remotes,omitempty"`
}

// RemoteConfig is the serialized form of one git remote
type RemoteConfig struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
	Push string `toml:"push,omitempty"`
}

type gitTaskFile struct {
	Repo []RepoConfig `toml:"repo"`
}

// Git scans task.SearchPaths for git repositories and writes their
// layout to task.Path as TOML.
func Git(fsys types.FS, task GitTask) error {
	logger := logging.GetLogger("generate.git")
	logger.Debug().Str("path", task.Path).Msg("Generating git config")

	repoPaths, err := findRepos(fsys, task.SearchPaths, task.Excludes)
	if err != nil {
		return err
	}

	repos := make([]RepoConfig, 0, len(repoPaths))
	for _, path := range repoPaths {
		repo, err := snapshotRepo(path)
		if err != nil {
			return err
		}
		repos = append(repos, repo)
	}
	sort.Slice(repos, func(i, j int) bool { return repos[i].Path < repos[j].Path })

	data, err := toml.Marshal(gitTaskFile{Repo: repos})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to serialize git config")
	}

	out := append([]byte(preludeComment), data...)
	if err := fsys.WriteFile(task.Path, out, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrIO, "failed to write generated git config").
			WithDetail("path", task.Path)
	}
	logger.Info().Str("path", task.Path).Int("repos", len(repos)).Msg("Git repo layout generated")
	return nil
}

// findRepos returns every directory under the search paths that holds a
// .git directory, excluding paths containing any exclude substring.
func findRepos(fsys types.FS, searchPaths, excludes []string) ([]string, error) {
	var repoPaths []string

	var walk func(dir string) error
	walk = func(dir string) error {
		for _, exclude := range excludes {
			if strings.Contains(dir, exclude) {
				return nil
			}
		}
		dirents, err := fsys.ReadDir(dir)
		if err != nil {
			return errors.Wrap(err, errors.ErrIO, "failed to read search directory").
				WithDetail("path", dir)
		}
		for _, d := range dirents {
			if !d.IsDir() {
				continue
			}
			if d.Name() == ".git" {
				repoPaths = append(repoPaths, dir)
				continue
			}
			if err := walk(filepath.Join(dir, d.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	for _, path := range searchPaths {
		if err := walk(path); err != nil {
			return nil, err
		}
	}
	return repoPaths, nil
}

// snapshotRepo reads a repository's branch and remotes
func snapshotRepo(path string) (RepoConfig, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return RepoConfig{}, errors.Wrap(err, errors.ErrGitOpen, "failed to open git repository").
			WithDetail("path", path)
	}

	config := RepoConfig{Path: path}

	// An unborn HEAD (no commits yet) just means no branch to record.
	if head, err := repo.Head(); err == nil {
		config.Branch = head.Name().Short()
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return RepoConfig{}, errors.Wrap(err, errors.ErrGitRemote, "failed to list remotes").
			WithDetail("path", path)
	}
	for _, remote := range remotes {
		rc := remote.Config()
		if len(rc.URLs) == 0 {
			continue
		}
		rec := RemoteConfig{Name: rc.Name, URL: rc.URLs[0]}
		// Extra URLs on a remote are push URLs.
		if len(rc.URLs) > 1 {
			rec.Push = rc.URLs[1]
		}
		config.Remotes = append(config.Remotes, rec)
	}
	sort.Slice(config.Remotes, func(i, j int) bool {
		return config.Remotes[i].Name < config.Remotes[j].Name
	})

	return config, nil
}
