package play

// Config is the yaml-backed viewer configuration.
type Config struct {
	Serve struct {
		Addr string `yaml:"addr"`
	} `yaml:"serve"`
	Playback struct {
		FPS           float64 `yaml:"fps"`
		Loop          bool    `yaml:"loop"`
		Autoplay      bool    `yaml:"autoplay"`
		Interpolation bool    `yaml:"interpolation"`
		Easing        string  `yaml:"easing"`
	} `yaml:"playback"`
	Background string `yaml:"background"`
	Watch      bool   `yaml:"watch"`
}

// DefaultConfig returns the configuration used when no config file is
// supplied.
func DefaultConfig() Config {
	var c Config
	c.Serve.Addr = ":3000"
	c.Playback.FPS = 10
	c.Playback.Loop = true
	c.Playback.Autoplay = true
	c.Playback.Easing = "linear"
	c.Background = "#1e1e1e"
	return c
}

// InitialState derives the starting playback state from the config.
func (c Config) InitialState() State {
	return State{
		Index:         0,
		Playing:       c.Playback.Autoplay,
		Loop:          c.Playback.Loop,
		FPS:           c.Playback.FPS,
		Interpolation: c.Playback.Interpolation,
	}
}
