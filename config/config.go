package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	Theme            string `json:"theme"`
	SidebarWidth     int    `json:"sidebar_width"`
	WordWrap         bool   `json:"word_wrap"`
	SampleIntervalMS int    `json:"sample_interval_ms"`
	QuestionService  string `json:"question_service"`
	ExportDir        string `json:"export_dir"`
	LogFile          string `json:"log_file"`

	// PersistSession reloads the previous document and references on
	// startup. Off by default: a session is in-memory unless opted in.
	PersistSession bool `json:"persist_session"`
}

type ColorScheme struct {
	Name            string
	Background      tcell.Color
	Foreground      tcell.Color
	Selection       tcell.Color
	SpanBg          tcell.Color
	SpanFg          tcell.Color
	MarkerFg        tcell.Color
	StatusBarBg     tcell.Color
	StatusBarFg     tcell.Color
	StatusBarModeBg tcell.Color
	SidebarHeaderFg tcell.Color
	SidebarFg       tcell.Color
	SidebarCiteFg   tcell.Color
	SidebarRemoveFg tcell.Color
	SidebarBorder   tcell.Color
	QuestionFg      tcell.Color
	DialogBg        tcell.Color
	DialogFg        tcell.Color
	DialogInputBg   tcell.Color
	DialogWarnFg    tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:            "Dark",
		Background:      tcell.ColorBlack,
		Foreground:      tcell.ColorWhite,
		Selection:       tcell.ColorDarkBlue,
		SpanBg:          tcell.ColorDarkSlateGray,
		SpanFg:          tcell.ColorLightCyan,
		MarkerFg:        tcell.ColorYellow,
		StatusBarBg:     tcell.ColorDarkBlue,
		StatusBarFg:     tcell.ColorWhite,
		StatusBarModeBg: tcell.ColorBlue,
		SidebarHeaderFg: tcell.ColorYellow,
		SidebarFg:       tcell.ColorWhite,
		SidebarCiteFg:   tcell.ColorGray,
		SidebarRemoveFg: tcell.ColorRed,
		SidebarBorder:   tcell.ColorGray,
		QuestionFg:      tcell.ColorLightGreen,
		DialogBg:        tcell.ColorBlack,
		DialogFg:        tcell.ColorWhite,
		DialogInputBg:   tcell.ColorDarkBlue,
		DialogWarnFg:    tcell.ColorRed,
	},
	"light": {
		Name:            "Light",
		Background:      tcell.ColorWhite,
		Foreground:      tcell.ColorBlack,
		Selection:       tcell.ColorLightBlue,
		SpanBg:          tcell.ColorLightYellow,
		SpanFg:          tcell.ColorDarkBlue,
		MarkerFg:        tcell.ColorDarkRed,
		StatusBarBg:     tcell.ColorLightBlue,
		StatusBarFg:     tcell.ColorBlack,
		StatusBarModeBg: tcell.ColorBlue,
		SidebarHeaderFg: tcell.ColorBlue,
		SidebarFg:       tcell.ColorBlack,
		SidebarCiteFg:   tcell.ColorGray,
		SidebarRemoveFg: tcell.ColorRed,
		SidebarBorder:   tcell.ColorGray,
		QuestionFg:      tcell.ColorDarkGreen,
		DialogBg:        tcell.ColorWhite,
		DialogFg:        tcell.ColorBlack,
		DialogInputBg:   tcell.ColorLightGray,
		DialogWarnFg:    tcell.ColorDarkRed,
	},
	"nord": {
		Name:            "Nord",
		Background:      tcell.NewRGBColor(46, 52, 64),
		Foreground:      tcell.NewRGBColor(236, 239, 244),
		Selection:       tcell.NewRGBColor(67, 76, 94),
		SpanBg:          tcell.NewRGBColor(59, 66, 82),
		SpanFg:          tcell.NewRGBColor(136, 192, 208),
		MarkerFg:        tcell.NewRGBColor(235, 203, 139),
		StatusBarBg:     tcell.NewRGBColor(67, 76, 94),
		StatusBarFg:     tcell.NewRGBColor(236, 239, 244),
		StatusBarModeBg: tcell.NewRGBColor(136, 192, 208),
		SidebarHeaderFg: tcell.NewRGBColor(136, 192, 208),
		SidebarFg:       tcell.NewRGBColor(236, 239, 244),
		SidebarCiteFg:   tcell.NewRGBColor(76, 86, 106),
		SidebarRemoveFg: tcell.NewRGBColor(191, 97, 106),
		SidebarBorder:   tcell.NewRGBColor(76, 86, 106),
		QuestionFg:      tcell.NewRGBColor(163, 190, 140),
		DialogBg:        tcell.NewRGBColor(46, 52, 64),
		DialogFg:        tcell.NewRGBColor(236, 239, 244),
		DialogInputBg:   tcell.NewRGBColor(67, 76, 94),
		DialogWarnFg:    tcell.NewRGBColor(191, 97, 106),
	},
	"one-dark": {
		Name:            "One Dark",
		Background:      tcell.NewRGBColor(40, 44, 52),
		Foreground:      tcell.NewRGBColor(171, 178, 191),
		Selection:       tcell.NewRGBColor(61, 66, 77),
		SpanBg:          tcell.NewRGBColor(49, 54, 63),
		SpanFg:          tcell.NewRGBColor(97, 175, 239),
		MarkerFg:        tcell.NewRGBColor(229, 192, 123),
		StatusBarBg:     tcell.NewRGBColor(61, 66, 77),
		StatusBarFg:     tcell.NewRGBColor(171, 178, 191),
		StatusBarModeBg: tcell.NewRGBColor(97, 175, 239),
		SidebarHeaderFg: tcell.NewRGBColor(198, 120, 221),
		SidebarFg:       tcell.NewRGBColor(171, 178, 191),
		SidebarCiteFg:   tcell.NewRGBColor(92, 99, 112),
		SidebarRemoveFg: tcell.NewRGBColor(224, 108, 117),
		SidebarBorder:   tcell.NewRGBColor(92, 99, 112),
		QuestionFg:      tcell.NewRGBColor(152, 195, 121),
		DialogBg:        tcell.NewRGBColor(40, 44, 52),
		DialogFg:        tcell.NewRGBColor(171, 178, 191),
		DialogInputBg:   tcell.NewRGBColor(61, 66, 77),
		DialogWarnFg:    tcell.NewRGBColor(224, 108, 117),
	},
}

func Default() *Config {
	return &Config{
		Theme:            "dark",
		SidebarWidth:     36,
		WordWrap:         true,
		SampleIntervalMS: 100,
		QuestionService:  "http://localhost:8787",
		ExportDir:        defaultExportDir(),
		LogFile:          "",
		PersistSession:   false,
	}
}

func defaultExportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sourcetrace-exports"
	}
	return filepath.Join(home, "sourcetrace-exports")
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["dark"]
	}
	return theme
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sourcetrace", "settings.json")
}

func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.SampleIntervalMS <= 0 {
		cfg.SampleIntervalMS = 100
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
