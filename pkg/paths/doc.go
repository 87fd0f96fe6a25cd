// Package paths maps version ids, library coordinates and asset hashes to
// their locations inside a game root.
//
// Every function here is pure: nothing touches the file system and the
// result depends only on the inputs and the configured root. Callers that
// need to know whether a file exists go through afero themselves.
//
// # Layout
//
//	<root>/versions/<id>/<id>.json           manifest
//	<root>/versions/<id>/<id>.jar            client jar
//	<root>/versions/<id>/<id>-natives        extracted natives
//	<root>/libraries/<group/as/dirs>/<artifact>/<version>/<artifact>-<version>[-<classifier>].jar
//	<root>/assets/indexes/<assetId>.json     asset index
//	<root>/assets/objects/<hh>/<hash>        asset object
//	<root>/assets/virtual/<assetId>/<name>   legacy name-addressed mirror
//	<root>/assets/log_configs/<fileId>       logging configuration
//
// # Environment Variables
//
//   - GAMEREPO_ROOT: game root used when none is given explicitly
//
// # Usage
//
//	p, err := paths.New("")  // GAMEREPO_ROOT or the platform default
//	if err != nil {
//	    log.Fatal(err)
//	}
//	jar := p.VersionJar("1.12.2")  // ~/.minecraft/versions/1.12.2/1.12.2.jar
package paths
