package main

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

var procedures = []string{
	"Cleaning",
	"Tooth Extraction",
	"Dental Filling",
	"Root Canal",
	"Braces Consultation",
	"Teeth Whitening",
}

func seedCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}

			db, err := dbpkg.NewDB(cfg, log)
			if err != nil {
				return err
			}
			defer dbpkg.Close(db)

			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			gofakeit.Seed(time.Now().UnixNano())

			ctx := cmd.Context()
			repo := infraRepo.NewAppointmentGormRepository(db)
			codes := domain.NewBookingCodeGenerator()
			now := timezone.NowIn(cfg.ClinicTimezone)

			// One accepted appointment per slot at most.
			taken := map[string]bool{}

			for i := 0; i < count; i++ {
				f := domain.BookingFields{
					Name:      gofakeit.Name(),
					Email:     gofakeit.Email(),
					Phone:     gofakeit.Phone(),
					Procedure: gofakeit.RandomString(procedures),
					Branch:    gofakeit.RandomString(cfg.Branches),
					Date:      now.AddDate(0, 0, gofakeit.Number(1, 28)).Format(domain.DateLayout),
					Time:      gofakeit.RandomString(cfg.Slots),
					UnderHMO:  domain.HMONo,
				}
				if gofakeit.Bool() {
					f.UnderHMO = domain.HMOYes
					f.HMOProvider = gofakeit.RandomString([]string{"Maxicare", "Intellicare", "MediCard"})
					f.HMOMembershipNumber = gofakeit.Numerify("HMO-########")
					f.Employer = gofakeit.Company()
				}

				if _, err := repo.GetOrCreatePatient(ctx, f.Name, f.Email, f.Phone); err != nil {
					return err
				}

				ap := domain.NewAppointment(f, now)

				slot := f.Branch + "|" + f.Date + "|" + f.Time
				switch gofakeit.Number(0, 2) {
				case 1:
					if !taken[slot] {
						code, err := codes.Generate()
						if err != nil {
							return err
						}
						domain.Accept(ap, code, now)
						taken[slot] = true
					}
				case 2:
					remark := "seeded cancellation"
					domain.Cancel(ap, &remark, now)
				}

				if err := repo.CreateAppointment(ctx, ap); err != nil {
					return err
				}
			}

			fmt.Printf("Seeded %d appointment(s).\n", count)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 25, "Number of appointments to create")
	return cmd
}
