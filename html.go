/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Seednode/whodle/games/whodle"
	"github.com/julienschmidt/httprouter"
)

func serveHomePage(cfg *Config, gm *GameManager, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		now := gm.now()

		var body strings.Builder
		body.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		body.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		body.WriteString(`<title>whodle</title></head><body>`)
		body.WriteString(fmt.Sprintf("<h1>WHODLE #%d</h1><p>%s</p><ul>",
			cfg.cal.PuzzleNumber(now),
			html.EscapeString(cfg.cal.DisplayDate(now)),
		))

		for _, mode := range whodle.Modes() {
			ms, ok := gm.modes[mode.Name]
			if !ok {
				continue
			}

			status := ""
			if ms.dataset.Load() == nil {
				status = " (loading)"
			}

			body.WriteString(fmt.Sprintf(`<li><a href="%s/whodle/%s">%s Who %s it?</a>%s</li>`,
				cfg.prefix, mode.Name, mode.Emoji, mode.Verb, status))
		}

		body.WriteString(`</ul></body></html>`)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		written, err := w.Write([]byte(body.String()))
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Home page (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveRobots(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data := `User-agent: Amazonbot
Disallow: /

User-agent: Applebot-Extended
Disallow: /

User-agent: Bytespider
Disallow: /

User-agent: CCBot
Disallow: /

User-agent: ClaudeBot
Disallow: /

User-agent: Google-Extended
Disallow: /

User-agent: GPTBot
Disallow: /

User-agent: meta-externalagent
Disallow: /`

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(data))
		if err != nil {
			errs <- err

			return
		}
	}
}
