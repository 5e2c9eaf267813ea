// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages rendered by name through gin's HTML renderer.
const (
	PageHome           = "home"
	PageShops          = "shops"
	PageShop           = "shop"
	PageLogin          = "login"
	PageRegister       = "register"
	PageForgotPassword = "forgot_password"
	PageResetPassword  = "reset_password"
	PageUnauthorized   = "unauthorized"
	PageDashboard      = "dashboard"
	PageNotFound       = "not_found"
)

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("02.01.2006")
	},
	"price": func(v float64) string {
		return fmt.Sprintf("%.2f ₺", v)
	},
	"rating": func(avg *float64) string {
		if avg == nil {
			return ""
		}
		return fmt.Sprintf("%.1f", *avg)
	},
	"roleLabel": func(role string) string {
		switch role {
		case "barber":
			return "Berber"
		case "employee":
			return "Çalışan"
		case "admin":
			return "Yönetici"
		default:
			return "Müşteri"
		}
	},
	"statusLabel": func(status string) string {
		switch status {
		case "cancelled":
			return "İptal edildi"
		case "completed":
			return "Tamamlandı"
		default:
			return "Planlandı"
		}
	},
}

// Templates parses every embedded page.
func Templates() (*template.Template, error) {
	return template.New("web").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
