package automation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
)

// NoData is returned instead of a file path when the portal reports that
// no price list is available for download.
const NoData = "NO_DATA"

// DownloadPriceList logs into the supplier portal and downloads the
// current price-list CSV into saveDir, returning the saved file path.
func DownloadPriceList(portalURL, userID, password, saveDir string) (string, error) {
	if _, err := os.Stat(saveDir); os.IsNotExist(err) {
		if err := os.MkdirAll(saveDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create save folder: %w", err)
		}
	}

	// Leakless(false) avoids tripping endpoint-protection software.
	u := launcher.New().
		Headless(true).
		Leakless(false).
		MustLaunch()

	browser := rod.New().ControlURL(u).MustConnect()
	defer browser.MustClose()

	page := browser.MustPage(portalURL)
	page.MustWaitStable()

	if err := rod.Try(func() {
		page.MustElement("[name='userid']").MustInput(userID)
	}); err != nil {
		return "", fmt.Errorf("user id field not found: %w", err)
	}
	if err := rod.Try(func() {
		page.MustElement("[name='password']").MustInput(password)
	}); err != nil {
		return "", fmt.Errorf("password field not found: %w", err)
	}

	loginBtn, err := page.ElementR("input, button, a", "Login|Sign in")
	if err == nil {
		loginBtn.MustClick()
	} else {
		page.KeyActions().Press(input.Enter).MustDo()
	}
	page.MustWaitStable()

	if err := rod.Try(func() {
		page.MustElementR("a, span, div", "Price List|Downloads").MustClick()
	}); err != nil {
		return "", fmt.Errorf("price list menu not found (login may have failed): %w", err)
	}
	page.MustWaitStable()

	wait := browser.MustWaitDownload()
	go page.MustHandleDialog()

	clicked := false
	for _, sel := range []string{"a[href*='pricelist']", "input[type='button']", "button"} {
		if el, err := page.ElementR(sel, "Download|CSV"); err == nil {
			el.MustClick()
			clicked = true
			break
		}
	}
	if !clicked {
		return "", fmt.Errorf("price list download button not found")
	}

	var fileData []byte
	resultChan := make(chan string)

	go func() {
		defer func() {
			_ = recover()
		}()
		fileData = wait()
		resultChan <- "downloaded"
	}()

	go func() {
		// the portal renders a message instead of starting a download
		// when there is nothing new
		for i := 0; i < 60; i++ {
			time.Sleep(500 * time.Millisecond)
			if body, err := page.Element("body"); err == nil {
				text, _ := body.Text()
				if strings.Contains(text, "no price list available") {
					resultChan <- "no_data"
					return
				}
			}
		}
	}()

	select {
	case res := <-resultChan:
		if res == "no_data" {
			return NoData, nil
		}
	case <-time.After(60 * time.Second):
		return "", fmt.Errorf("timed out waiting for the download to start")
	}

	if len(fileData) == 0 {
		return "", fmt.Errorf("downloaded price list is empty")
	}

	filename := fmt.Sprintf("pricelist_%s.csv", time.Now().Format("20060102_150405"))
	savePath := filepath.Join(saveDir, filename)
	if err := os.WriteFile(savePath, fileData, 0644); err != nil {
		return "", fmt.Errorf("failed to save price list: %w", err)
	}

	return savePath, nil
}
