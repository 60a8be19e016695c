package playermigrations

import (
	"context"
	"fmt"

	playerdb "github.com/DanielWijono/minton3t-ranking/app/modules/player/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating divisions table...")

		if _, err := db.NewCreateTable().Model((*playerdb.Division)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		seed := []playerdb.Division{
			{ID: uuid.New(), Name: "PLATINUM PHOENIX", Color: "#e8d5b5", SortOrder: 1},
			{ID: uuid.New(), Name: "GOLDEN FALCON", Color: "#d4a853", SortOrder: 2},
			{ID: uuid.New(), Name: "SILVER HAWK", Color: "#8a9bb3", SortOrder: 3},
		}
		if _, err := db.NewInsert().Model(&seed).On("CONFLICT (name) DO NOTHING").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Divisions table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping divisions table...")

		if _, err := db.NewDropTable().Model((*playerdb.Division)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Divisions table dropped successfully!")
		return nil
	})
}
