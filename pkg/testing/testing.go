package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// cd to the project root during tests, so relative paths (logs dir,
	// config files) resolve the same no matter which package runs.
	// usage:
	//
	//   in some_test.go,
	//   import (
	//     _ "battwatch.xyz/battery-health-service/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}
