package classify

import "github.com/ziadkadry99/mockweb/internal/templates"

// DefaultTheme is the theme label used when no theme keyword matches.
const DefaultTheme = "a medida"

// Rules are evaluated in order; the first rule with a matching keyword wins.
var templateRules = []rule[templates.Name]{
	{keywords: []string{"minimalista", "clean", "simple"}, value: templates.Minimal},
	{keywords: []string{"creativo", "artístico", "portfolio"}, value: templates.Creative},
}

var themeRules = []rule[string]{
	{keywords: []string{"negocio", "empresa"}, value: "empresariales"},
	{keywords: []string{"tienda", "ecommerce"}, value: "de e-commerce"},
	{keywords: []string{"portfolio", "personal"}, value: "profesionales"},
}

// BucketKind names a service bucket.
type BucketKind string

const (
	BucketBusiness BucketKind = "business"
	BucketCreative BucketKind = "creative"
	BucketDefault  BucketKind = "default"
)

var bucketRules = []rule[BucketKind]{
	{keywords: []string{"empresa", "negocio"}, value: BucketBusiness},
	{keywords: []string{"creativo", "artístico"}, value: BucketCreative},
}

// Service is one entry of a service bucket.
type Service struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// ServiceBucket is a fixed, ordered list of three services.
type ServiceBucket struct {
	Kind     BucketKind `json:"kind"`
	Services []Service  `json:"services"`
}

var buckets = map[BucketKind]ServiceBucket{
	BucketBusiness: {Kind: BucketBusiness, Services: []Service{
		{Name: "Consultoría", Icon: "bi bi-briefcase"},
		{Name: "Desarrollo", Icon: "bi bi-code-slash"},
		{Name: "Marketing", Icon: "bi bi-megaphone"},
	}},
	BucketCreative: {Kind: BucketCreative, Services: []Service{
		{Name: "Diseño", Icon: "bi bi-palette"},
		{Name: "Branding", Icon: "bi bi-tags"},
		{Name: "Fotografía", Icon: "bi bi-camera"},
	}},
	BucketDefault: {Kind: BucketDefault, Services: []Service{
		{Name: "Web Design", Icon: "bi bi-layout-text-window"},
		{Name: "SEO", Icon: "bi bi-search"},
		{Name: "Soporte", Icon: "bi bi-headset"},
	}},
}
