package seeding

import (
	"context"
	"fmt"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type demoBuilding struct {
	key      string
	name     string
	district string
	units    int
	occupied int
	rent     int64
}

var demoBuildings = []demoBuilding{
	{key: "gunes", name: "Güneş Apartmanı", district: "Kadıköy", units: 10, occupied: 7, rent: 15000},
	{key: "deniz", name: "Deniz Sitesi", district: "Beşiktaş", units: 6, occupied: 4, rent: 22000},
}

var demoTenantNames = [][2]string{
	{"Ayşe", "Yılmaz"}, {"Mehmet", "Kaya"}, {"Zeynep", "Demir"}, {"Can", "Şahin"},
	{"Elif", "Çelik"}, {"Emre", "Yıldız"}, {"Selin", "Aydın"}, {"Burak", "Öztürk"},
	{"Deniz", "Arslan"}, {"Ece", "Doğan"}, {"Kerem", "Koç"},
}

func buildingID(key string) uuid.UUID { return seedID("building/" + key) }

func apartmentID(key string, unit int) uuid.UUID {
	return seedID(fmt.Sprintf("apartment/%s/%d", key, unit))
}

func tenantID(i int) uuid.UUID { return seedID(fmt.Sprintf("tenant/%d", i)) }

// occupiedUnits yields (building, unit, tenant index) for every occupied
// apartment in a fixed order.
func occupiedUnits(fn func(b demoBuilding, unit, tenant int) error) error {
	tenant := 0
	for _, b := range demoBuildings {
		for unit := 1; unit <= b.occupied; unit++ {
			if err := fn(b, unit, tenant); err != nil {
				return err
			}
			tenant++
		}
	}
	return nil
}

func seedUsers(ctx context.Context, repos Repositories, now time.Time) error {
	admin := &models.User{
		ID:        uuid.MustParse(DefaultAdminID),
		Kind:      models.UserKindAdmin,
		FirstName: "Demo",
		LastName:  "Yönetici",
		Email:     "admin@example.com",
		IsActive:  true,
		Admin:     &models.AdminProfile{CompanyName: "Demo Site Yönetimi"},
	}
	owner := &models.User{
		ID:        uuid.MustParse(DefaultOwnerID),
		Kind:      models.UserKindOwner,
		FirstName: "Hakan",
		LastName:  "Ev Sahibi",
		Email:     "owner@example.com",
		IsActive:  true,
		Owner:     &models.OwnerProfile{IBAN: "TR330006100519786457841326"},
	}
	for _, u := range []*models.User{admin, owner} {
		if err := repos.Users.Create(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

// seedTenants runs after the apartments exist so the tenant payload can
// reference them.
func seedTenants(ctx context.Context, repos Repositories, now time.Time) error {
	return occupiedUnits(func(b demoBuilding, unit, i int) error {
		aptID := apartmentID(b.key, unit)
		moveIn := now.AddDate(0, -12+i, 0)
		return repos.Users.Create(ctx, &models.User{
			ID:        tenantID(i),
			Kind:      models.UserKindTenant,
			FirstName: demoTenantNames[i][0],
			LastName:  demoTenantNames[i][1],
			Email:     fmt.Sprintf("tenant%d@example.com", i+1),
			IsActive:  true,
			CreatedAt: moveIn,
			Tenant:    &models.TenantProfile{ApartmentID: &aptID, MoveInDate: &moveIn},
		})
	})
}

func seedBuildings(ctx context.Context, repos Repositories, now time.Time) error {
	adminID := uuid.MustParse(DefaultAdminID)
	ownerID := uuid.MustParse(DefaultOwnerID)
	for _, b := range demoBuildings {
		bldg := &models.Building{
			ID:               buildingID(b.key),
			AdminID:          adminID,
			BuildingName:     b.name,
			Address:          b.name + " No: 1",
			City:             "İstanbul",
			District:         b.district,
			FloorCount:       (b.units + 1) / 2,
			TotalApartments:  b.units,
			ConstructionYear: utils.Ptr(2005),
			Amenities: models.Amenities{
				HasElevator: true,
				HasParking:  b.key == "deniz",
				HasSecurity: b.key == "deniz",
				HeatingType: "Kombi",
			},
		}
		if err := repos.Buildings.Create(ctx, bldg); err != nil {
			return err
		}

		apts := make([]models.Apartment, 0, b.units)
		for unit := 1; unit <= b.units; unit++ {
			apts = append(apts, models.Apartment{
				ID:         apartmentID(b.key, unit),
				BuildingID: bldg.ID,
				UnitNumber: fmt.Sprintf("%d", unit),
				Floor:      (unit - 1) / 2,
				RoomCount:  "3+1",
				RentAmount: decimal.NewFromInt(b.rent),
				IsOccupied: unit <= b.occupied,
				OwnerID:    &ownerID,
			})
		}
		if err := repos.Apartments.CreateMany(ctx, apts); err != nil {
			return err
		}
	}
	return nil
}

// seedContracts gives every tenant an active lease. The first two end within
// the expiring-contracts window.
func seedContracts(ctx context.Context, repos Repositories, now time.Time) error {
	ownerID := uuid.MustParse(DefaultOwnerID)
	return occupiedUnits(func(b demoBuilding, unit, i int) error {
		end := now.AddDate(0, 6+i, 0)
		if i < 2 {
			end = now.AddDate(0, 0, 10+i*7)
		}
		return repos.Contracts.Create(ctx, &models.Contract{
			ID:          seedID(fmt.Sprintf("contract/%d", i)),
			TenantID:    tenantID(i),
			OwnerID:     ownerID,
			ApartmentID: apartmentID(b.key, unit),
			StartDate:   end.AddDate(-1, 0, 0),
			EndDate:     end,
			RentAmount:  decimal.NewFromInt(b.rent),
			IsActive:    true,
		})
	})
}

// seedPayments writes six months of rent and dues per tenant: mostly on
// time, every third tenant late by a few days with a penalty, and the
// current month left open for the last two tenants.
func seedPayments(ctx context.Context, repos Repositories, now time.Time) error {
	return occupiedUnits(func(b demoBuilding, unit, i int) error {
		for m := 5; m >= 0; m-- {
			due := time.Date(now.Year(), now.Month(), 5, 12, 0, 0, 0, time.UTC).AddDate(0, -m, 0)
			if due.After(now) {
				continue
			}
			for _, typ := range []string{models.PaymentTypeRent, models.PaymentTypeDues} {
				amount := decimal.NewFromInt(b.rent)
				if typ == models.PaymentTypeDues {
					amount = decimal.NewFromInt(1200)
				}
				p := &models.Payment{
					ID:          seedID(fmt.Sprintf("payment/%d/%d/%s", i, m, typ)),
					UserID:      tenantID(i),
					ApartmentID: apartmentID(b.key, unit),
					PaymentType: typ,
					Amount:      amount,
					DueDate:     due,
					Description: fmt.Sprintf("%s %s", typ, due.Format("2006-01")),
				}
				switch {
				case m == 0 && i >= len(demoTenantNames)-2:
					// left unpaid
				case i%3 == 2 && typ == models.PaymentTypeRent && !due.AddDate(0, 0, 3+m).After(now):
					delay := 3 + m
					paid := due.AddDate(0, 0, delay)
					p.IsPaid, p.PaymentDate = true, &paid
					p.DelayedDays = &delay
					p.PenaltyAmount = utils.Ptr(amount.Mul(decimal.NewFromFloat(0.01)).Mul(decimal.NewFromInt(int64(delay))))
				default:
					paid := due.AddDate(0, 0, -1)
					p.IsPaid, p.PaymentDate = true, &paid
				}
				if err := repos.Payments.Create(ctx, p); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
