package cities_test

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Flaque/filet"
	"github.com/nursultantorobaev/selfhub-services/internal/cities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	t.Parallel()
	directory := cities.NewDirectory(slog.Default())

	t.Run("empty query returns nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, directory.Filter(""))
	})

	t.Run("single character query returns nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, directory.Filter("n"))
	})

	t.Run("matches are case-insensitive substrings", func(t *testing.T) {
		t.Parallel()

		matches := directory.Filter("SAN")

		require.NotEmpty(t, matches)
		assert.LessOrEqual(t, len(matches), 10)
		for _, name := range matches {
			assert.Contains(t, strings.ToLower(name), "san")
		}
	})

	t.Run("substring match is not anchored to the prefix", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, directory.Filter("geles"), "Los Angeles")
	})

	t.Run("results are capped at ten", func(t *testing.T) {
		t.Parallel()

		// Two vowels match a large share of the list.
		assert.Len(t, directory.Filter("an"), 10)
	})

	t.Run("results keep directory order", func(t *testing.T) {
		t.Parallel()

		matches := directory.Filter("ew")

		require.GreaterOrEqual(t, len(matches), 2)
		assert.Equal(t, "New Orleans", matches[0])
		assert.Equal(t, "New York", matches[1])
	})

	t.Run("no match returns empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, directory.Filter("zzzz"))
	})
}

func TestNewDirectory_Deduplicates(t *testing.T) {
	t.Parallel()
	directory := cities.NewDirectory(slog.Default())

	for _, name := range []string{"Irvine", "Ontario", "Pembroke Pines", "St. Louis"} {
		matches := directory.Filter(strings.ToLower(name))

		count := 0
		for _, match := range matches {
			if match == name {
				count++
			}
		}
		assert.Equalf(t, 1, count, "%q should appear exactly once", name)
	}
}

func TestNewDirectoryFromFile(t *testing.T) {
	defer filet.CleanUp(t)

	t.Run("loads and dedupes a city list file", func(t *testing.T) {
		dir := filet.TmpDir(t, "")
		path := filepath.Join(dir, "cities.txt")
		filet.File(t, path, "Springfield\n\nShelbyville\nSpringfield\n")

		directory, err := cities.NewDirectoryFromFile(slog.Default(), path)

		require.NoError(t, err)
		assert.Equal(t, 2, directory.Len())
		assert.Equal(t, []string{"Springfield"}, directory.Filter("spring"))
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := cities.NewDirectoryFromFile(slog.Default(), "does/not/exist.txt")

		require.Error(t, err)
	})
}
