package plan

// Ecosystem is the closed set of destinations a detected project can be
// filed under
type Ecosystem int

const (
	EcosystemOther Ecosystem = iota
	EcosystemNextJS
	EcosystemRemix
	EcosystemAngular
	EcosystemVue
	EcosystemVite
	EcosystemNestJS
	EcosystemDjango
	EcosystemTauri
	EcosystemNode
	EcosystemRust
	EcosystemPython
	EcosystemWeb
	EcosystemVault
	EcosystemGo
	EcosystemJava
	EcosystemDotNet
	EcosystemGit
	EcosystemCpp
	EcosystemGame
	EcosystemPHP
	EcosystemRuby
	EcosystemFlutter
	EcosystemMobile
	EcosystemDevOps
	EcosystemData
	EcosystemJupyter
	EcosystemElixir
	EcosystemJulia

	ecosystemCount
)

// Ecosystems returns every ecosystem in declaration order
func Ecosystems() []Ecosystem {
	out := make([]Ecosystem, 0, ecosystemCount)
	for e := EcosystemOther; e < ecosystemCount; e++ {
		out = append(out, e)
	}
	return out
}

var markerEcosystems = map[string]Ecosystem{
	"next.config.js":             EcosystemNextJS,
	"next.config.mjs":            EcosystemNextJS,
	"remix.config.js":            EcosystemRemix,
	"angular.json":               EcosystemAngular,
	"vue.config.js":              EcosystemVue,
	"vite.config.js":             EcosystemVite,
	"vite.config.ts":             EcosystemVite,
	"nest-cli.json":              EcosystemNestJS,
	"manage.py":                  EcosystemDjango,
	"src-tauri/tauri.conf.json":  EcosystemTauri,
	"src-tauri/tauri.conf.json5": EcosystemTauri,

	"package.json": EcosystemNode,
	"node_modules": EcosystemNode,
	"*.js":         EcosystemNode,
	"*.ts":         EcosystemNode,

	"Cargo.toml": EcosystemRust,

	"pyproject.toml":   EcosystemPython,
	"requirements.txt": EcosystemPython,
	"venv":             EcosystemPython,
	"app.py":           EcosystemPython,
	"main.py":          EcosystemPython,
	"*.py":             EcosystemPython,

	"index.html": EcosystemWeb,
	".obsidian":  EcosystemVault,
	"go.mod":     EcosystemGo,

	"pom.xml":      EcosystemJava,
	"build.gradle": EcosystemJava,

	"*.sln":          EcosystemDotNet,
	".git":           EcosystemGit,
	"Makefile":       EcosystemCpp,
	"CMakeLists.txt": EcosystemCpp,

	"steam_settings":  EcosystemGame,
	"*.exe":           EcosystemGame,
	"Assets":          EcosystemGame,
	"ProjectSettings": EcosystemGame,

	"composer.json": EcosystemPHP,
	"index.php":     EcosystemPHP,
	"artisan":       EcosystemPHP,

	"Gemfile":      EcosystemRuby,
	"pubspec.yaml": EcosystemFlutter,

	"AndroidManifest.xml": EcosystemMobile,
	"build.gradle.kts":    EcosystemMobile,
	"*.xcodeproj":         EcosystemMobile,
	"*.xcworkspace":       EcosystemMobile,
	"Package.swift":       EcosystemMobile,
	"ionic.config.json":   EcosystemMobile,

	"Dockerfile":         EcosystemDevOps,
	"docker-compose.yml": EcosystemDevOps,
	"Containerfile":      EcosystemDevOps,
	"*.tf":               EcosystemDevOps,

	"*.Rproj":      EcosystemData,
	"*.ipynb":      EcosystemJupyter,
	"mix.exs":      EcosystemElixir,
	"Project.toml": EcosystemJulia,
}

// EcosystemForMarker maps a detection marker to its ecosystem. Unknown
// markers map to EcosystemOther.
func EcosystemForMarker(marker string) Ecosystem {
	if e, ok := markerEcosystems[marker]; ok {
		return e
	}
	return EcosystemOther
}

// Folder returns the destination folder under the root, slash separated
func (e Ecosystem) Folder() string {
	switch e {
	case EcosystemGame:
		return "Games"
	case EcosystemVault:
		return "Documents/Vaults"
	case EcosystemOther:
		return "Projects/Other"
	}
	if name, ok := ecosystemNames[e]; ok {
		return "Projects/" + name
	}
	return "Projects/Other"
}

var ecosystemNames = map[Ecosystem]string{
	EcosystemOther:   "Other",
	EcosystemNextJS:  "NextJS",
	EcosystemRemix:   "Remix",
	EcosystemAngular: "Angular",
	EcosystemVue:     "Vue",
	EcosystemVite:    "Vite",
	EcosystemNestJS:  "NestJS",
	EcosystemDjango:  "Django",
	EcosystemTauri:   "Tauri",
	EcosystemNode:    "Node",
	EcosystemRust:    "Rust",
	EcosystemPython:  "Python",
	EcosystemWeb:     "Web",
	EcosystemVault:   "Vault",
	EcosystemGo:      "Go",
	EcosystemJava:    "Java",
	EcosystemDotNet:  "DotNet",
	EcosystemGit:     "Git",
	EcosystemCpp:     "Cpp",
	EcosystemGame:    "Game",
	EcosystemPHP:     "PHP",
	EcosystemRuby:    "Ruby",
	EcosystemFlutter: "Flutter",
	EcosystemMobile:  "Mobile",
	EcosystemDevOps:  "DevOps",
	EcosystemData:    "Data",
	EcosystemJupyter: "Jupyter",
	EcosystemElixir:  "Elixir",
	EcosystemJulia:   "Julia",
}

func (e Ecosystem) String() string {
	if name, ok := ecosystemNames[e]; ok {
		return name
	}
	return "Unknown"
}
