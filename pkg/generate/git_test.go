package generate_test

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gibfahn/dot/pkg/filesystem"
	"github.com/gibfahn/dot/pkg/generate"
)

func initRepo(t *testing.T, path string, remotes map[string][]string) {
	t.Helper()
	repo, err := git.PlainInit(path, false)
	require.NoError(t, err)
	for name, urls := range remotes {
		_, err := repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: name,
			URLs: urls,
		})
		require.NoError(t, err)
	}
}

type generatedFile struct {
	Repo []generate.RepoConfig `toml:"repo"`
}

func TestGit(t *testing.T) {
	root := t.TempDir()
	initRepo(t, filepath.Join(root, "src", "dotfiles"), map[string][]string{
		"origin": {"git@example.com:me/dotfiles.git", "git@mirror.example.com:me/dotfiles.git"},
	})
	initRepo(t, filepath.Join(root, "src", "tool"), map[string][]string{
		"origin":   {"https://example.com/me/tool.git"},
		"upstream": {"https://example.com/them/tool.git"},
	})
	initRepo(t, filepath.Join(root, "scratch", "tmp"), map[string][]string{
		"origin": {"https://example.com/me/tmp.git"},
	})

	outPath := filepath.Join(root, "repos.toml")
	task := generate.GitTask{
		Path:        outPath,
		SearchPaths: []string{root},
		Excludes:    []string{"scratch"},
	}
	require.NoError(t, generate.Git(filesystem.NewOS(), task))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Generated by `dot generate git`")

	var got generatedFile
	require.NoError(t, toml.Unmarshal(data, &got))
	require.Len(t, got.Repo, 2, "excluded repo must not appear")

	// Repos are sorted by path.
	assert.Equal(t, filepath.Join(root, "src", "dotfiles"), got.Repo[0].Path)
	assert.Equal(t, filepath.Join(root, "src", "tool"), got.Repo[1].Path)

	require.Len(t, got.Repo[0].Remotes, 1)
	assert.Equal(t, "origin", got.Repo[0].Remotes[0].Name)
	assert.Equal(t, "git@example.com:me/dotfiles.git", got.Repo[0].Remotes[0].URL)
	assert.Equal(t, "git@mirror.example.com:me/dotfiles.git", got.Repo[0].Remotes[0].Push)

	require.Len(t, got.Repo[1].Remotes, 2)
	assert.Equal(t, "origin", got.Repo[1].Remotes[0].Name)
	assert.Empty(t, got.Repo[1].Remotes[0].Push)
	assert.Equal(t, "upstream", got.Repo[1].Remotes[1].Name)
}

func TestGit_NoRepos(t *testing.T) {
	root := t.TempDir()
	outPath := filepath.Join(root, "repos.toml")

	err := generate.Git(filesystem.NewOS(), generate.GitTask{
		Path:        outPath,
		SearchPaths: []string{root},
	})
	require.NoError(t, err)

	var got generatedFile
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.NoError(t, toml.Unmarshal(data, &got))
	assert.Empty(t, got.Repo)
}
