package utils

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
)

func ts() string {
	return time.Now().Format("15:04:05")
}

func line(format string, a ...interface{}) string {
	return fmt.Sprintf("[%s] %s", ts(), fmt.Sprintf(format, a...))
}

// SetDebug turns Debug output on or off.
func SetDebug(on bool) {
	if on {
		pterm.EnableDebugMessages()
		return
	}
	pterm.DisableDebugMessages()
}

func Debug(format string, a ...interface{}) {
	pterm.Debug.Println(line(format, a...))
}

func Info(format string, a ...interface{}) {
	pterm.Info.Println(line(format, a...))
}

func Success(format string, a ...interface{}) {
	pterm.Success.Println(line(format, a...))
}

func Warn(format string, a ...interface{}) {
	pterm.Warning.Println(line(format, a...))
}

func Error(format string, a ...interface{}) {
	pterm.Error.Println(line(format, a...))
}

func Section(title string) {
	pterm.DefaultSection.Println(title)
}
