package synth

import (
	"fmt"
	"html"
	"strings"

	"github.com/ziadkadry99/mockweb/internal/classify"
)

const cardMarkup = `
        <div class="col-md-4">
            <div class="service-card">
                <div class="service-icon">
                    <i class="%s"></i>
                </div>
                <h3>%s</h3>
                <p>Servicios %s especializados en %s para tu negocio.</p>
            </div>
        </div>
    `

// ServiceCards renders one card per bucket entry.
func ServiceCards(theme string, bucket classify.ServiceBucket) string {
	var b strings.Builder
	theme = html.EscapeString(theme)
	for _, svc := range bucket.Services {
		name := html.EscapeString(svc.Name)
		fmt.Fprintf(&b, cardMarkup, svc.Icon, name, theme, strings.ToLower(name))
	}
	return b.String()
}
