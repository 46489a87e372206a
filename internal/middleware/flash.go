package middleware

import (
	"net/http"
	"net/url"
	"time"
)

// Flash messages ride a short-lived cookie across the Post/Redirect/Get
// hop: mutating handlers set one, the next rendered page pops it.

const (
	flashCookie      = "flash"
	flashLevelCookie = "flash_level"
)

// Flash sets a flash message cookie consumed by the next rendered page.
// level is "success", "warning" or "error".
func Flash(w http.ResponseWriter, level, msg string) {
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: url.QueryEscape(msg), Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: flashLevelCookie, Value: level, Path: "/"})
}

// PopFlash reads and clears the flash cookie pair. Returns empty strings
// when no flash is pending.
func PopFlash(w http.ResponseWriter, r *http.Request) (level, msg string) {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return "", ""
	}
	if dec, derr := url.QueryUnescape(c.Value); derr == nil {
		msg = dec
	} else {
		msg = c.Value
	}
	level = "success"
	if lc, lerr := r.Cookie(flashLevelCookie); lerr == nil && lc.Value != "" {
		level = lc.Value
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: flashLevelCookie, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	return level, msg
}
