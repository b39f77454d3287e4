// Package assets provides the theme stylesheets and page template used to
// render articles.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in themes and the article template
//	    ├── FilesystemLoader  - user assets from a directory on disk
//	    └── AssetResolver     - custom first, embedded on not-found
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   ├── layout.css         # shared page layout, driven by theme variables
//	│   └── {theme}.css        # one file per theme (light, dark, sepia, ...)
//	└── templates/
//	    └── article.html       # html/template for the article page
//
// Themes only set CSS custom properties; layout.css consumes them. A custom
// theme directory can therefore override a single theme without copying
// the layout.
//
// # Security
//
// Asset names are validated so they cannot carry path components, and
// FilesystemLoader resolves symlinks before checking containment.
package assets
