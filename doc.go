// Package configfile locates and loads a typed configuration file.
//
// A Locator[T] is built from a logical filename and an ordered list of
// candidate directories. Load resolves the first directory that contains the
// file, decodes its contents with a pluggable codec (JSON, YAML or TOML,
// chosen from the filename extension unless set explicitly), and falls back
// to a caller-supplied default value when the file is missing or cannot be
// parsed, optionally persisting that default to disk for future runs.
//
// Typical usage:
//
//	loc := configfile.New[Cfg]("app.json",
//	    configfile.WithDirectories[Cfg](configfile.SearchDirs("myapp")...),
//	    configfile.WithDefault(Cfg{Greeting: "hello"}),
//	    configfile.WithCreateIfMissing[Cfg](),
//	)
//	cfg, path, created, err := loc.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = cfg; _ = path; _ = created
//
// Candidate directories are joined with the filename using a literal '/'
// separator on every platform; they are search-path entries, not host paths
// that need platform-specific cleaning.
package configfile
