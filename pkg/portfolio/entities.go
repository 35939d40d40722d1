// Package portfolio declares the entity kinds of the portfolio document and
// wires one mutation lifecycle per kind.
package portfolio

// Intro is the landing banner. The document holds exactly one.
type Intro struct {
	ID          string `json:"_id"`
	WelcomeText string `json:"welcomeText"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Caption     string `json:"caption"`
	Description string `json:"description"`
}

// About is the biography section. The document holds exactly one.
type About struct {
	ID           string   `json:"_id"`
	LottieURL    string   `json:"lottieURL"`
	Description1 string   `json:"description1"`
	Description2 string   `json:"description2"`
	Skills       []string `json:"skills"`
}

// Experience is one position in the work timeline.
type Experience struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Period      string `json:"period"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// Project is one showcased project.
type Project struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Link         string   `json:"link"`
	Technologies []string `json:"technologies"`
}

// Course is one completed course.
type Course struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Link         string   `json:"link"`
	Technologies []string `json:"technologies"`
}

// Contact holds the owner's contact details. The document holds exactly one.
type Contact struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Age     string `json:"age"`
	Address string `json:"address"`
}
