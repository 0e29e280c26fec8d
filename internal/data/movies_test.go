package data

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func newTestCatalog() *Catalog {
	return NewCatalog(
		[]Movie{
			{Name: "Up", Language: "English", Genre: "Animation", Subtitle: "Yes"},
			{Name: "Dangal", Language: "Hindi", Genre: "Drama", Subtitle: "No"},
			{Name: "Amelie", Language: "French", Genre: "Comedy", Subtitle: "Yes"},
			{Name: "Up", Language: "Hindi", Genre: "Animation", Subtitle: "No"},
			{Name: "Coco", Language: "English", Genre: "Animation", Subtitle: "No"},
		},
		Options{
			Languages: []string{"English", "Hindi", "French"},
			Genres:    []string{"Animation", "Drama", "Comedy", "Horror"},
			Subtitles: []string{"Yes", "No"},
		},
	)
}

func names(movies []Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Name+"/"+m.Language)
	}
	return out
}

func TestCatalog_Find(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog()

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{
			name:    "no filters returns whole catalog in order",
			filters: Filters{},
			want:    []string{"Up/English", "Dangal/Hindi", "Amelie/French", "Up/Hindi", "Coco/English"},
		},
		{
			name:    "genre",
			filters: Filters{Genre: ptr("Animation")},
			want:    []string{"Up/English", "Up/Hindi", "Coco/English"},
		},
		{
			name:    "name is case-insensitive and returns duplicates",
			filters: Filters{Name: ptr("uP")},
			want:    []string{"Up/English", "Up/Hindi"},
		},
		{
			name:    "name and language",
			filters: Filters{Name: ptr("up"), Language: ptr("Hindi")},
			want:    []string{"Up/Hindi"},
		},
		{
			name:    "language genre subtitle",
			filters: Filters{Language: ptr("English"), Genre: ptr("Animation"), Subtitle: ptr("No")},
			want:    []string{"Coco/English"},
		},
		{
			name:    "empty values are treated as absent",
			filters: Filters{Name: ptr(""), Language: ptr(""), Genre: ptr("Drama"), Subtitle: ptr("")},
			want:    []string{"Dangal/Hindi"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := catalog.Find(tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(result.Results))
		})
	}
}

func TestCatalog_FindFiltersApplied(t *testing.T) {
	t.Parallel()

	result, err := newTestCatalog().Find(Filters{Name: ptr("up"), Genre: ptr("Animation"), Subtitle: ptr("")})
	require.NoError(t, err)

	require.NotNil(t, result.FiltersApplied.Name)
	assert.Equal(t, "up", *result.FiltersApplied.Name)
	assert.Nil(t, result.FiltersApplied.Language)
	require.NotNil(t, result.FiltersApplied.Genre)
	assert.Equal(t, "Animation", *result.FiltersApplied.Genre)
	assert.Nil(t, result.FiltersApplied.Subtitle)
}

func TestCatalog_FindErrors(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog()

	tests := []struct {
		name    string
		filters Filters
		wantMsg string
		check   func(t *testing.T, err error)
	}{
		{
			name:    "unsupported language",
			filters: Filters{Language: ptr("Klingon")},
			wantMsg: "Language 'Klingon' is not supported.",
			check: func(t *testing.T, err error) {
				var target *UnsupportedOptionError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, FieldLanguage, target.Field)
			},
		},
		{
			name:    "unsupported genre",
			filters: Filters{Genre: ptr("Western")},
			wantMsg: "Genre 'Western' is not supported.",
		},
		{
			name:    "unsupported subtitle",
			filters: Filters{Subtitle: ptr("Maybe")},
			wantMsg: "Subtitle option 'Maybe' is not available.",
		},
		{
			name:    "option values are case-sensitive",
			filters: Filters{Genre: ptr("animation")},
			wantMsg: "Genre 'animation' is not supported.",
		},
		{
			name:    "language is checked before genre",
			filters: Filters{Language: ptr("Klingon"), Genre: ptr("Western")},
			wantMsg: "Language 'Klingon' is not supported.",
		},
		{
			name:    "unsupported option wins over an unknown name",
			filters: Filters{Name: ptr("Nope"), Subtitle: ptr("Maybe")},
			wantMsg: "Subtitle option 'Maybe' is not available.",
		},
		{
			name:    "unknown name",
			filters: Filters{Name: ptr("Nope")},
			wantMsg: "Movie 'Nope' not found.",
			check: func(t *testing.T, err error) {
				var target *MovieNotFoundError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "Nope", target.Name)
			},
		},
		{
			name:    "valid filters with no intersection",
			filters: Filters{Language: ptr("English"), Genre: ptr("Drama")},
			wantMsg: "No movies found matching the given filters.",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNoResults)
			},
		},
		{
			name:    "known name excluded by other filters",
			filters: Filters{Name: ptr("Dangal"), Subtitle: ptr("Yes")},
			wantMsg: "No movies found matching the given filters.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := catalog.Find(tt.filters)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, IsLookupMiss(err))
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestCatalog_FindIsConjunctive(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog()

	for _, lang := range catalog.Options().Languages {
		for _, genre := range catalog.Options().Genres {
			byLang, errLang := catalog.Find(Filters{Language: ptr(lang)})
			byGenre, errGenre := catalog.Find(Filters{Genre: ptr(genre)})
			both, errBoth := catalog.Find(Filters{Language: ptr(lang), Genre: ptr(genre)})

			var want []string
			if errLang == nil && errGenre == nil {
				inGenre := map[Movie]bool{}
				for _, m := range byGenre.Results {
					inGenre[m] = true
				}
				for _, m := range byLang.Results {
					if inGenre[m] {
						want = append(want, m.Name+"/"+m.Language)
					}
				}
			}

			if len(want) == 0 {
				assert.ErrorIs(t, errBoth, ErrNoResults, "%s/%s", lang, genre)
				continue
			}
			require.NoError(t, errBoth)
			assert.Equal(t, want, names(both.Results), "%s/%s", lang, genre)
		}
	}
}

func TestCatalog_FindExactMatch(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog()

	for _, subtitle := range catalog.Options().Subtitles {
		result, err := catalog.Find(Filters{Subtitle: ptr(subtitle)})
		require.NoError(t, err)
		for _, m := range result.Results {
			assert.Equal(t, subtitle, m.Subtitle)
		}
	}
}

func TestCatalog_FindIsIdempotent(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog()
	filters := Filters{Genre: ptr("Animation")}

	first, err := catalog.Find(filters)
	require.NoError(t, err)
	first.Results[0].Name = "changed by caller"

	second, err := catalog.Find(filters)
	require.NoError(t, err)
	assert.Equal(t, "Up", second.Results[0].Name)
	assert.Equal(t, 5, catalog.Len())
}

func TestNewCatalog_CopiesInput(t *testing.T) {
	t.Parallel()

	movies := []Movie{{Name: "Up", Language: "English", Genre: "Animation", Subtitle: "Yes"}}
	genres := []string{"Animation"}
	catalog := NewCatalog(movies, Options{Languages: []string{"English"}, Genres: genres, Subtitles: []string{"Yes"}})

	movies[0].Name = "Down"
	genres[0] = "Horror"

	assert.Equal(t, "Up", catalog.Movies()[0].Name)
	assert.Equal(t, []string{"Animation"}, catalog.Options().Genres)
}

func TestCatalog_Inconsistencies(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(
		[]Movie{
			{Name: "Up", Language: "English", Genre: "Animation", Subtitle: "Yes"},
			{Name: "Psycho", Language: "English", Genre: "Thriller", Subtitle: "Partial"},
		},
		Options{Languages: []string{"English"}, Genres: []string{"Animation"}, Subtitles: []string{"Yes"}},
	)

	got := catalog.Inconsistencies()
	assert.Equal(t, []UnsupportedOptionError{
		{Field: FieldGenre, Value: "Thriller"},
		{Field: FieldSubtitle, Value: "Partial"},
	}, got)

	// The record is still served when no filter excludes it.
	result, err := catalog.Find(Filters{Name: ptr("psycho")})
	require.NoError(t, err)
	assert.Len(t, result.Results, 1)
}

func TestModels(t *testing.T) {
	t.Parallel()

	models := NewModels(newTestCatalog())
	assert.Equal(t, 5, models.Movies.Count())

	result, err := models.Movies.Find(Filters{Name: ptr("coco")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Coco/English"}, names(result.Results))

	boom := errors.New("boom")
	mock := NewMockModels(MockMovieModel{Err: boom})
	_, err = mock.Movies.Find(Filters{})
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsLookupMiss(err))
	assert.Equal(t, 0, mock.Movies.Count())
}
