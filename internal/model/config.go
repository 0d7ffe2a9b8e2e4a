package model

import "time"

// Config is the full runtime configuration. Everything here is loaded once
// at startup and passed explicitly to the components that need it.
type Config struct {
	Years   []int         `yaml:"years" mapstructure:"years"`
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
	Paths   PathsConfig   `yaml:"paths" mapstructure:"paths"`
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Workers WorkerConfig  `yaml:"workers" mapstructure:"workers"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// SourcesConfig describes where county-year precinct files live. The URL
// layout changed across election cycles, so the path scheme is data here,
// not code in the fetcher.
type SourcesConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// DatePrefixes maps an election year to the YYYYMMDD file prefix used
	// by the source repository.
	DatePrefixes map[int]string `yaml:"date_prefixes" mapstructure:"date_prefixes"`
	// ElectionDates maps an election year to the ISO general-election date
	// stamped on synthesized rows.
	ElectionDates map[int]string `yaml:"election_dates" mapstructure:"election_dates"`
	// Counties maps the source repository's county slug to the display
	// name used in the authoritative table.
	Counties map[string]string `yaml:"counties" mapstructure:"counties"`
}

// PathsConfig collects every file the run reads or writes.
type PathsConfig struct {
	MasterCSV  string `yaml:"master_csv" mapstructure:"master_csv"`
	CCDCSV     string `yaml:"ccd_csv" mapstructure:"ccd_csv"`
	SummaryCSV string `yaml:"summary_csv" mapstructure:"summary_csv"`
	Staging    string `yaml:"staging" mapstructure:"staging"`
	MatchLog   string `yaml:"match_log" mapstructure:"match_log"`
	// Fragments and Keywords override the embedded matching tables when
	// set. Both are versioned YAML data, not code.
	Fragments string `yaml:"fragments" mapstructure:"fragments"`
	Keywords  string `yaml:"keywords" mapstructure:"keywords"`
}

// HTTPConfig bounds the behavior of the source fetcher.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxRetries   uint64        `yaml:"max_retries" mapstructure:"max_retries"`
}

// CacheConfig controls the layered download cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// WorkerConfig bounds concurrency and politeness toward the source host.
type WorkerConfig struct {
	CountyYearWorkers int     `yaml:"county_year_workers" mapstructure:"county_year_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// OutputConfig controls CLI chatter.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the Arizona general-election defaults.
func DefaultConfig() *Config {
	return &Config{
		Years: []int{2014, 2016, 2018, 2020, 2022, 2024},
		Sources: SourcesConfig{
			BaseURL: "https://raw.githubusercontent.com/openelections/openelections-data-az/master",
			DatePrefixes: map[int]string{
				2014: "20141104", 2016: "20161108", 2018: "20181106",
				2020: "20201103", 2022: "20221108", 2024: "20241105",
			},
			ElectionDates: map[int]string{
				2014: "2014-11-04", 2016: "2016-11-08", 2018: "2018-11-06",
				2020: "2020-11-03", 2022: "2022-11-08", 2024: "2024-11-05",
			},
			Counties: map[string]string{
				"apache": "Apache", "cochise": "Cochise", "coconino": "Coconino",
				"gila": "Gila", "graham": "Graham", "greenlee": "Greenlee",
				"la_paz": "La Paz", "maricopa": "Maricopa", "mohave": "Mohave",
				"navajo": "Navajo", "pima": "Pima", "pinal": "Pinal",
				"santa_cruz": "Santa Cruz", "yavapai": "Yavapai", "yuma": "Yuma",
			},
		},
		Paths: PathsConfig{
			MasterCSV:  "az_school_board_master.csv",
			CCDCSV:     "source_data/ccd/ccd_lea_029_2425_w_1a_073025.csv",
			SummaryCSV: "az_district_year_summary.csv",
			Staging:    "openelections_new_rows.csv",
			MatchLog:   "openelections_match_log.json",
		},
		HTTP: HTTPConfig{
			Timeout:      60 * time.Second,
			UserAgent:    "azboards/0.2 (+https://github.com/jmfreder123/az-boards)",
			MaxBodyBytes: 20_000_000,
			MaxRetries:   3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".azboards-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Workers: WorkerConfig{
			CountyYearWorkers: 1,
			RequestsPerSecond: 2,
			Burst:             2,
		},
		Output: OutputConfig{},
	}
}
