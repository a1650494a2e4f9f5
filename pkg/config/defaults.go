package config

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		IgnorePatterns: []string{
			"**/node_modules/**",
			"**/.git/**",
			"**/target/**",
			"**/.vscode/**",
			"**/dist/**",
			"**/build/**",
			"**/games/**",
			"**/Games/**",
			"**/site-packages/**",
			"**/.obsidian/**",
			"**/.idea/**",
			"**/venv/**",
			"**/.venv/**",
			"**/__pycache__/**",
			"**/__MACOSX/**",
			"**/static/**",
			"**/templates/**",
			"**/assets/**",
			"**/public/**",
		},
		// Framework markers come before generic language markers so the
		// more specific ecosystem wins.
		ProjectMarkers: []string{
			"next.config.js",
			"next.config.mjs",
			"remix.config.js",
			"angular.json",
			"vue.config.js",
			"vite.config.js",
			"vite.config.ts",
			"nest-cli.json",
			"manage.py",
			"src-tauri/tauri.conf.json",
			"src-tauri/tauri.conf.json5",

			"package.json",
			"Cargo.toml",
			"pyproject.toml",
			"pyvenv.cfg",
			".git",
			"go.mod",
			"pom.xml",
			"build.gradle",
			"*.sln",
			"requirements.txt",
			"app.py",
			"main.py",
			"Makefile",
			"CMakeLists.txt",
			"steam_settings",
			"*.py",
			"*.js",
			"*.ts",
			"index.html",
			".obsidian",

			"composer.json",
			"index.php",
			"artisan",
			"Gemfile",
			"ionic.config.json",
			"pubspec.yaml",
			"build.gradle.kts",
			"AndroidManifest.xml",
			"*.xcodeproj",
			"*.xcworkspace",
			"Package.swift",
			"Dockerfile",
			"docker-compose.yml",
			"Containerfile",
			"*.tf",
			"ProjectSettings",
			"Assets",
			"*.Rproj",
			"mix.exs",
			"Project.toml",
			"*.ipynb",
		},
		Rules: []Rule{
			{
				Name:        "Images",
				Patterns:    []string{"*.jpg", "*.jpeg", "*.png", "*.gif", "*.svg", "*.webp", "*.bmp", "*.tiff"},
				Destination: "Media/Images",
				Active:      true,
			},
			{
				Name:        "Videos",
				Patterns:    []string{"*.mp4", "*.mkv", "*.mov", "*.avi", "*.webm"},
				Destination: "Media/Videos",
				Active:      true,
			},
			{
				Name:        "Audio",
				Patterns:    []string{"*.mp3", "*.wav", "*.flac", "*.aac", "*.ogg"},
				Destination: "Media/Audio",
				Active:      true,
			},
			{
				Name:        "Documents",
				Patterns:    []string{"*.pdf", "*.docx", "*.doc", "*.txt", "*.xlsx", "*.pptx", "*.csv", "*.md"},
				Destination: "Documents",
				Active:      true,
			},
			{
				Name:        "Installers",
				Patterns:    []string{"*.exe", "*.msi"},
				Destination: "Downloads/Installers",
				Active:      true,
			},
			{
				Name:        "Archives",
				Patterns:    []string{"*.zip", "*.rar", "*.7z", "*.tar.gz"},
				Destination: "Downloads/Archives",
				Active:      true,
			},
			{
				Name:        "Shortcuts",
				Patterns:    []string{"*.lnk", "*.url"},
				Destination: "Shortcuts",
				Active:      true,
			},
		},
		Naming: NamingConfig{
			Enabled:           false,
			Model:             "gemini-2.5-flash",
			Timeout:           "15s",
			RequestsPerMinute: 15,
			Workers:           4,
		},
	}
}
