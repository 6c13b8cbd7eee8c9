package catalog

import (
	"os"

	"gopkg.in/yaml.v3"

	"pennypet/internal/gamestate"
)

type Pet struct {
	ID      string `yaml:"id" json:"id"`
	Label   string `yaml:"label" json:"label"`
	Cost    int    `yaml:"cost" json:"cost"`
	Premium bool   `yaml:"premium" json:"premium"`
}

type Accessory struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Cost  int    `yaml:"cost" json:"cost"`
}

// Catalog enumerates the purchasable pets and accessories with their shop
// prices. The store itself takes caller-supplied costs; handlers look prices
// up here.
type Catalog struct {
	Pets        []Pet       `yaml:"pets" json:"pets"`
	Accessories []Accessory `yaml:"accessories" json:"accessories"`
}

func Default() Catalog {
	return Catalog{
		Pets: []Pet{
			{ID: gamestate.PetDog, Label: "Dog", Cost: 0},
			{ID: gamestate.PetCat, Label: "Cat", Cost: 150},
			{ID: gamestate.PetRabbit, Label: "Rabbit", Cost: 250},
			{ID: gamestate.PetDragon, Label: "Dragon", Cost: 500, Premium: true},
		},
		Accessories: []Accessory{
			{ID: gamestate.AccessoryCollar, Label: "Collar", Cost: 25},
			{ID: gamestate.AccessoryBow, Label: "Bow", Cost: 15},
			{ID: gamestate.AccessoryHat, Label: "Hat", Cost: 40},
			{ID: gamestate.AccessoryGlasses, Label: "Glasses", Cost: 60},
		},
	}
}

func (c *Catalog) ApplyDefaults() {
	def := Default()
	if len(c.Pets) == 0 {
		c.Pets = def.Pets
	}
	if len(c.Accessories) == 0 {
		c.Accessories = def.Accessories
	}
}

// Load reads a catalog YAML file. Missing sections fall back to the defaults.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}

func (c *Catalog) Pet(id string) (Pet, bool) {
	for _, p := range c.Pets {
		if p.ID == id {
			return p, true
		}
	}
	return Pet{}, false
}

func (c *Catalog) Accessory(id string) (Accessory, bool) {
	for _, a := range c.Accessories {
		if a.ID == id {
			return a, true
		}
	}
	return Accessory{}, false
}

// AccessoryCosts maps accessory id to price, the shape handlers return to the
// client for shop rendering.
func (c *Catalog) AccessoryCosts() map[string]int {
	out := make(map[string]int, len(c.Accessories))
	for _, a := range c.Accessories {
		out[a.ID] = a.Cost
	}
	return out
}

// PetCosts maps pet id to price.
func (c *Catalog) PetCosts() map[string]int {
	out := make(map[string]int, len(c.Pets))
	for _, p := range c.Pets {
		out[p.ID] = p.Cost
	}
	return out
}
