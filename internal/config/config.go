package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Width        int    `mapstructure:"width"`
	Wrap         bool   `mapstructure:"wrap"`
	Theme        string `mapstructure:"theme"`
	Pager        bool   `mapstructure:"pager"`
	Editor       string `mapstructure:"editor"`
	ColorHeading string `mapstructure:"color_heading"`
	ColorBullet  string `mapstructure:"color_bullet"`
	ColorItalic  string `mapstructure:"color_italic"`
	ColorCode    string `mapstructure:"color_code"`
	ColorBorder  string `mapstructure:"color_border"`
	ColorDim     string `mapstructure:"color_dim"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("width", 80)
	viper.SetDefault("wrap", true)
	viper.SetDefault("theme", "monokai") // chroma style name
	viper.SetDefault("pager", false)
	viper.SetDefault("editor", "")
	viper.SetDefault("color_heading", "36") // Cyan
	viper.SetDefault("color_bullet", "33")  // Yellow
	viper.SetDefault("color_italic", "37")  // White
	viper.SetDefault("color_code", "32")    // Green
	viper.SetDefault("color_border", "240")
	viper.SetDefault("color_dim", "241")

	viper.SetConfigName("replymd")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "replymd"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("REPLYMD")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetWidth returns the target render width
func GetWidth() int {
	return viper.GetInt("width")
}

// GetWrap returns whether paragraphs are word-wrapped
func GetWrap() bool {
	return viper.GetBool("wrap")
}

// GetTheme returns the chroma style used for code blocks
func GetTheme() string {
	return viper.GetString("theme")
}

// GetPager returns whether output opens in the interactive pager
func GetPager() bool {
	return viper.GetBool("pager")
}

// GetEditor returns the configured editor command
func GetEditor() string {
	return viper.GetString("editor")
}

// GetColorHeading returns the ANSI color code for headings
func GetColorHeading() string {
	return viper.GetString("color_heading")
}

// GetColorBullet returns the ANSI color code for list markers
func GetColorBullet() string {
	return viper.GetString("color_bullet")
}

// GetColorItalic returns the ANSI color code for italic text
func GetColorItalic() string {
	return viper.GetString("color_italic")
}

// GetColorCode returns the ANSI color code for inline code
func GetColorCode() string {
	return viper.GetString("color_code")
}

// GetColorBorder returns the color for borders and dividers
func GetColorBorder() string {
	return viper.GetString("color_border")
}

// GetColorDim returns the color for de-emphasized chrome text
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// SetWidth sets the render width at runtime
func SetWidth(w int) {
	viper.Set("width", w)
	C.Width = w
}

// SetWrap sets wrapping at runtime
func SetWrap(wrap bool) {
	viper.Set("wrap", wrap)
	C.Wrap = wrap
}

// SetTheme sets the chroma style at runtime
func SetTheme(theme string) {
	viper.Set("theme", theme)
	C.Theme = theme
}

// SetPager sets pager mode at runtime
func SetPager(pager bool) {
	viper.Set("pager", pager)
	C.Pager = pager
}
