package data

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/myk4040okothogodo/moviefinder/internal/validator"
)

// Section and key names of the catalog file.
const (
	sectionLanguages = "LANGUAGES"
	sectionGenres    = "GENRES"
	sectionSubtitles = "SUBTITLES"
	sectionMovies    = "MOVIES"

	keyAvailable = "available"
	keyMovies    = "movies"

	recordSeparator = "|"
	recordFields    = 4
)

// The catalog file follows the layout Python's configparser reads: keys are case-insensitive, there are
// no inline comments, and indented continuation lines extend the previous value.
var iniOptions = ini.LoadOptions{
	AllowPythonMultilineValues: true,
	InsensitiveKeys:            true,
	IgnoreInlineComment:        true,
}

// FormatError is returned when a movie record does not split into exactly four fields.
type FormatError struct {
	Record int // 1-based position of the record in the movies list
	Line   string
	Fields int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("catalog: movie record %d %q has %d fields, want %d (name | language | genre | subtitle)",
		e.Record, e.Line, e.Fields, recordFields)
}

// ConfigError is returned when a section or key is missing, or an option list is empty. Errors maps the
// offending "SECTION.key" to a message.
type ConfigError struct {
	Errors map[string]string
}

func (e *ConfigError) Error() string {
	v := &validator.Validator{Errors: e.Errors}
	return "catalog: invalid configuration: " + v.String()
}

// LoadCatalog reads and parses the catalog file at path.
func LoadCatalog(path string) (*Catalog, error) {
	file, err := ini.LoadSources(iniOptions, path)
	if err != nil {
		return nil, fmt.Errorf("catalog: loading %s: %w", path, err)
	}
	return parseCatalog(file)
}

// ParseCatalog parses catalog file contents held in memory.
func ParseCatalog(src []byte) (*Catalog, error) {
	file, err := ini.LoadSources(iniOptions, src)
	if err != nil {
		return nil, fmt.Errorf("catalog: parsing: %w", err)
	}
	return parseCatalog(file)
}

func parseCatalog(file *ini.File) (*Catalog, error) {
	v := validator.New()

	options := Options{
		Languages: optionList(v, file, sectionLanguages),
		Genres:    optionList(v, file, sectionGenres),
		Subtitles: optionList(v, file, sectionSubtitles),
	}

	raw, ok := value(v, file, sectionMovies, keyMovies)

	if !v.Valid() {
		return nil, &ConfigError{Errors: v.Errors}
	}

	var movies []Movie
	if ok {
		var err error
		movies, err = parseRecords(raw)
		if err != nil {
			return nil, err
		}
	}

	return NewCatalog(movies, options), nil
}

func optionList(v *validator.Validator, file *ini.File, section string) []string {
	raw, ok := value(v, file, section, keyAvailable)
	if !ok {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}

	v.Check(len(values) > 0, section+"."+keyAvailable, "must contain at least one value")
	return values
}

func value(v *validator.Validator, file *ini.File, section, key string) (string, bool) {
	sec, err := file.GetSection(section)
	if err != nil {
		v.AddError(section+"."+key, "section must be provided")
		return "", false
	}
	if !sec.HasKey(key) {
		v.AddError(section+"."+key, "must be provided")
		return "", false
	}
	return sec.Key(key).String(), true
}

// parseRecords splits the multi-line movies value into records. Blank lines are skipped.
func parseRecords(raw string) ([]Movie, error) {
	var movies []Movie
	record := 0

	for _, line := range strings.Split(raw, "\n") {
		if !validator.NotBlank(line) {
			continue
		}
		record++

		parts := strings.Split(line, recordSeparator)
		if len(parts) != recordFields {
			return nil, &FormatError{Record: record, Line: strings.TrimSpace(line), Fields: len(parts)}
		}

		movies = append(movies, Movie{
			Name:     strings.TrimSpace(parts[0]),
			Language: strings.TrimSpace(parts[1]),
			Genre:    strings.TrimSpace(parts[2]),
			Subtitle: strings.TrimSpace(parts[3]),
		})
	}

	return movies, nil
}
