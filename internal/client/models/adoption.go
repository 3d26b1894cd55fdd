package models

// AdoptedSpecies is the species summary embedded in an adoption.
type AdoptedSpecies struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	LatinName            string  `json:"latinName"`
	ImageURL             string  `json:"imageUrl,omitempty"`
	MainImageURL         string  `json:"mainImageUrl,omitempty"`
	Category             string  `json:"category,omitempty"`
	CarbonRate           float64 `json:"carbonRate,omitempty"`
	CarbonAbsorptionRate float64 `json:"carbonAbsorptionRate,omitempty"`
	Description          string  `json:"description,omitempty"`
	StoryContent         string  `json:"storyContent,omitempty"`
	BasePrice            Amount  `json:"basePrice,omitempty"`
}

// Tree is the physical tree assigned to an adoption.
type Tree struct {
	ID           string  `json:"id"`
	SerialNumber string  `json:"serialNumber"`
	Latitude     *string `json:"latitude"`
	Longitude    *string `json:"longitude"`
	PlantedAt    *string `json:"plantedAt"`
	Status       string  `json:"status"`
}

type Owner struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Adoption is an entry of the user's dashboard.
type Adoption struct {
	AdoptionID string         `json:"adoptionId"`
	AdoptedAt  string         `json:"adoptedAt"`
	NameOnTag  string         `json:"nameOnTag"`
	Species    AdoptedSpecies `json:"species"`
	Tree       Tree           `json:"tree"`
	Order      Order          `json:"order"`
}

// AdoptionDetail is the full view of a single adoption.
type AdoptionDetail struct {
	Adoption
	CertificateURL *string `json:"certificateUrl"`
	Owner          *Owner  `json:"owner,omitempty"`
}

type AdoptionStats struct {
	TotalAdoptions      int     `json:"totalAdoptions"`
	TotalTreesPlanted   int     `json:"totalTreesPlanted"`
	TotalCarbonAbsorbed float64 `json:"totalCarbonAbsorbed"`
	LastMonthAdoptions  int     `json:"lastMonthAdoptions"`
}

// User is the authenticated profile returned by /auth/me.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"fullName"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}
