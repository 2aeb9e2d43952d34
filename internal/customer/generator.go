package customer

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// Registration counts used by the init and daily cadences.
const (
	InitialCount  = 100
	DailyCountMin = 5
	DailyCountMax = 15
)

var cities = []string{
	"Taipei City",
	"New Taipei City",
	"Taoyuan City",
	"Taichung City",
	"Tainan City",
	"Kaohsiung City",
	"Hsinchu County",
	"Miaoli County",
	"Changhua County",
	"Nantou County",
	"Yunlin County",
	"Chiayi County",
	"Pingtung County",
	"Yilan County",
	"Hualien County",
	"Taitung County",
	"Penghu County",
	"Kinmen County",
	"Lienchiang County",
	"Keelung City",
	"Hsinchu City",
	"Chiayi City",
}

// Generator synthesizes customer identities.
type Generator struct {
	faker *gofakeit.Faker
}

func NewGenerator(faker *gofakeit.Faker) *Generator {
	return &Generator{faker: faker}
}

// GenerateInitial produces the seed customer base, registered yesterday.
func (g *Generator) GenerateInitial(count int) ([]*Customer, error) {
	yesterday := time.Now().AddDate(0, 0, -1)
	return g.generate(count, yesterday)
}

// GenerateNew produces a random count of customers in [min, max],
// registered yesterday.
func (g *Generator) GenerateNew(min, max int) ([]*Customer, error) {
	yesterday := time.Now().AddDate(0, 0, -1)
	return g.generate(g.faker.Number(min, max), yesterday)
}

// GenerateForDay produces a random count of customers registered on the
// given historical day.
func (g *Generator) GenerateForDay(min, max int, day time.Time) ([]*Customer, error) {
	return g.generate(g.faker.Number(min, max), day)
}

func (g *Generator) generate(count int, registeredAt time.Time) ([]*Customer, error) {
	now := time.Now()
	youngest := now.AddDate(-16, 0, 0)
	oldest := now.AddDate(-70, 0, 0)

	customers := make([]*Customer, 0, count)
	for i := 0; i < count; i++ {
		c, err := NewCustomer(
			uuid.NewString(),
			g.faker.Name(),
			g.faker.RandomString([]string{"M", "F"}),
			g.faker.DateRange(oldest, youngest),
			g.faker.Email(),
			g.faker.Phone(),
			g.faker.RandomString(cities),
			registeredAt,
		)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, nil
}
