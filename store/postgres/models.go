package postgres

import (
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/relief/id"
	"github.com/xraph/relief/person"
	"github.com/xraph/relief/service"
	"github.com/xraph/relief/supply"
	"github.com/xraph/relief/types"
)

// ==================== Person models ====================

type personModel struct {
	grove.BaseModel `grove:"table:relief_users"`

	ID        string    `grove:"id,pk"`
	Name      string    `grove:"name"`
	Age       int       `grove:"age"`
	Location  string    `grove:"location"`
	Phone     string    `grove:"phone"`
	Email     string    `grove:"email"`
	Password  string    `grove:"password"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toPersonModel(p *person.Person) *personModel {
	return &personModel{
		ID:        p.ID.String(),
		Name:      p.Name,
		Age:       p.Age,
		Location:  p.Location,
		Phone:     p.Phone,
		Email:     p.Email,
		Password:  p.Password,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromPersonModel(m *personModel) (*person.Person, error) {
	personID, err := id.ParsePersonID(m.ID)
	if err != nil {
		return nil, err
	}

	return &person.Person{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:       personID,
		Name:     m.Name,
		Age:      m.Age,
		Location: m.Location,
		Phone:    m.Phone,
		Email:    m.Email,
		Password: m.Password,
	}, nil
}

// ==================== Service models ====================

type serviceModel struct {
	grove.BaseModel `grove:"table:relief_services"`

	ID          string    `grove:"id,pk"`
	Timestamp   time.Time `grove:"timestamp"`
	User        string    `grove:"user"`
	Disaster    string    `grove:"disaster"`
	FoodPackets int64     `grove:"food_packets"`
	MedicalKits int64     `grove:"medical_kits"`
	Location    string    `grove:"location"`
	EvacCenter  string    `grove:"evac_center"`
	CreatedAt   time.Time `grove:"created_at"`
	UpdatedAt   time.Time `grove:"updated_at"`
}

func toServiceModel(r *service.Record) *serviceModel {
	return &serviceModel{
		ID:          r.ID.String(),
		Timestamp:   r.Timestamp,
		User:        r.User,
		Disaster:    r.Disaster,
		FoodPackets: r.FoodPackets,
		MedicalKits: r.MedicalKits,
		Location:    r.Location,
		EvacCenter:  r.EvacCenter,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func fromServiceModel(m *serviceModel) (*service.Record, error) {
	recordID, err := id.ParseServiceRecordID(m.ID)
	if err != nil {
		return nil, err
	}

	return &service.Record{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:          recordID,
		Timestamp:   m.Timestamp,
		User:        m.User,
		Disaster:    m.Disaster,
		FoodPackets: m.FoodPackets,
		MedicalKits: m.MedicalKits,
		Location:    m.Location,
		EvacCenter:  m.EvacCenter,
	}, nil
}

// ==================== Supply models ====================

type supplyModel struct {
	grove.BaseModel `grove:"table:relief_supplies"`

	ID        string    `grove:"id,pk"`
	Location  string    `grove:"location"`
	Year      int       `grove:"year"`
	TotalFood int64     `grove:"total_food"`
	TotalMed  int64     `grove:"total_med"`
	GivenFood int64     `grove:"given_food"`
	GivenMed  int64     `grove:"given_med"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toSupplyModel(e *supply.Entry) *supplyModel {
	return &supplyModel{
		ID:        e.ID.String(),
		Location:  e.Location,
		Year:      e.Year,
		TotalFood: e.TotalFood,
		TotalMed:  e.TotalMed,
		GivenFood: e.GivenFood,
		GivenMed:  e.GivenMed,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func fromSupplyModel(m *supplyModel) (*supply.Entry, error) {
	entryID, err := id.ParseSupplyEntryID(m.ID)
	if err != nil {
		return nil, err
	}

	return &supply.Entry{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:        entryID,
		Location:  m.Location,
		Year:      m.Year,
		TotalFood: m.TotalFood,
		TotalMed:  m.TotalMed,
		GivenFood: m.GivenFood,
		GivenMed:  m.GivenMed,
	}, nil
}
