package xconf_test

import (
	"context"
	"fmt"

	"github.com/omeyang/rogger/pkg/config/xconf"
)

func ExampleLoadBytes() {
	data := []byte(`
level: warn
service_name: api
console:
  enabled: true
  stream: stdout
`)
	cfg, err := xconf.LoadBytes(data, xconf.FormatYAML)
	if err != nil {
		fmt.Println(err)
		return
	}

	logger, cleanup, err := cfg.Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer cleanup()

	_ = logger.Info(context.Background(), "filtered", nil)
	fmt.Println(logger.Service(), logger.GetLevel())
	// Output:
	// api warn
}
