// Package browser drives a real browser for the manual apply-externally
// affordance: it opens the job posting so the user can finish an application
// the backend could not submit automatically.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

const pageLoadTimeout = 30 * time.Second

// ATS kinds recognized from the posting URL
const (
	ATSLinkedIn   = "linkedin"
	ATSGreenhouse = "greenhouse"
	ATSLever      = "lever"
	ATSWorkday    = "workday"
	ATSUnknown    = "unknown"
)

// ATSKind identifies the applicant tracking system serving a posting URL.
func ATSKind(postingURL string) string {
	parsed, err := url.Parse(postingURL)
	if err != nil || parsed.Host == "" {
		return ATSUnknown
	}
	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "linkedin.com"):
		return ATSLinkedIn
	case strings.Contains(host, "greenhouse.io"):
		return ATSGreenhouse
	case strings.Contains(host, "lever.co"):
		return ATSLever
	case strings.Contains(host, "myworkdayjobs.com"):
		return ATSWorkday
	}
	return ATSUnknown
}

// SupportsAutomation reports whether the posting is on a board the backend's
// automation knows how to submit to. Anything else needs the manual flow.
func SupportsAutomation(postingURL string) bool {
	switch ATSKind(postingURL) {
	case ATSLinkedIn, ATSGreenhouse, ATSLever:
		return true
	}
	return false
}

// newBrowserContext creates a visible (non-headless) browser context so the
// user can take over the page once it loads.
func newBrowserContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", false),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("excludeSwitches", "enable-automation"),
		chromedp.Flag("useAutomationExtension", false),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancel2 := chromedp.NewContext(allocCtx)

	return ctx, func() {
		cancel2()
		cancel()
	}
}

// OpenPosting navigates a browser to the posting URL and verifies the page
// actually loaded instead of a bot-block interstitial. Only the verification
// is bounded by the timeout; on success the browser stays open and the caller
// must invoke the returned close function once the user is done with it.
// Cancelling the browser context closes the window, so the context handed to
// chromedp.Run is a child of it: the deadline bounds the verification actions
// without tearing down the browser.
func OpenPosting(parent context.Context, postingURL string) (func(), error) {
	if postingURL == "" {
		return nil, fmt.Errorf("no posting URL")
	}

	ctx, cancel := newBrowserContext(parent)

	verifyCtx, verifyCancel := context.WithTimeout(ctx, pageLoadTimeout)
	defer verifyCancel()

	var pageTitle, pageText string
	err := chromedp.Run(verifyCtx,
		chromedp.Navigate(postingURL),
		chromedp.Sleep(2*time.Second),
		chromedp.Title(&pageTitle),
		chromedp.Text("body", &pageText, chromedp.ByQuery),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open posting: %w", err)
	}

	if isBlockPage(pageTitle, pageText) {
		cancel()
		return nil, fmt.Errorf("the job board is blocking automated access - open %s manually", postingURL)
	}
	return cancel, nil
}

// isBlockPage checks for common bot-block indicators
func isBlockPage(title, body string) bool {
	title = strings.ToLower(title)
	body = strings.ToLower(body)

	indicators := []string{
		"access denied",
		"blocked",
		"robot check",
		"checking your browser",
		"enable javascript",
	}
	for _, indicator := range indicators {
		if strings.Contains(title, indicator) || strings.Contains(body, indicator) {
			return true
		}
	}
	return false
}
