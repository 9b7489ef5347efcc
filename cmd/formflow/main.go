// Command formflow serves, fills and validates declarative forms.
package main

import (
	"context"
	"log"
	"os"

	"github.com/goliatone/go-formflow/cmd/formflow/internal"
)

func main() {
	if err := internal.Run(context.Background(), os.Args[1:], os.Getenv); err != nil {
		log.Fatalf("formflow: %v", err)
	}
}
