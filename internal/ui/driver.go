package ui

import "fmt"

// Open starts the driver backend named by kind ("rod" or "chromedp") on url
func Open(kind, url string, headless bool) (Driver, error) {
	switch kind {
	case "rod", "":
		return NewRodDriver(url, headless)
	case "chromedp":
		return NewChromeDriver(url, headless)
	}
	return nil, fmt.Errorf("unknown driver %q", kind)
}
