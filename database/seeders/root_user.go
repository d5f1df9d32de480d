package seeders

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storehub/app/services"
	"github.com/shashiranjanraj/storehub/config"
)

func init() {
	Register("root_user", seedRootUser)
}

// seedRootUser creates the ROOT_USERNAME account from ROOT_PASSWORD once.
func seedRootUser(ctx context.Context, db *gorm.DB, out io.Writer) error {
	password := config.RootPassword()
	if password == "" {
		return errors.New("ROOT_PASSWORD is not set")
	}

	username := config.RootUsername()
	created, err := services.NewStoreService(db).EnsureRootUser(ctx, username, password)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "created %q ", username)
	} else {
		fmt.Fprintf(out, "%q exists ", username)
	}
	return nil
}
