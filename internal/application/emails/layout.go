package emails

import (
	"fmt"
	"time"
)

const (
	themePrimary = "#0F766E"
	themeBgBody  = "#F3F4F6"
	themeMuted   = "#6B7280"
)

// renderLayout wraps the notification body in the shared HTML shell.
func renderLayout(title, contentHTML string) string {
	year := time.Now().Year()
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="fr">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>DZ-Kitab</title>
  <style>
    body { margin: 0; padding: 0; background-color: %s; font-family: -apple-system, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; }
    .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 8px; overflow: hidden; }
    .header { background-color: %s; color: #fff; padding: 24px 32px; font-size: 20px; font-weight: 700; }
    .body { padding: 24px 32px; color: #1F2937; font-size: 15px; line-height: 1.6; }
    .footer { padding: 16px 32px; color: %s; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">%s</div>
    <div class="body">%s</div>
    <div class="footer">© %d DZ-Kitab — Marché du livre universitaire d'occasion</div>
  </div>
</body>
</html>`, themeBgBody, themePrimary, themeMuted, title, contentHTML, year)
}
