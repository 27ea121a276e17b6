package prompt

import "math/rand/v2"

var randomScenarios = []string{
	"Un viaje a Barcelona",
	"Una cena con amigos en un restaurante",
	"Un día en la playa",
	"Una aventura en las montañas",
	"El primer día de universidad",
	"Una fiesta de cumpleaños sorpresa",
	"Un encuentro inesperado en el parque",
	"Una visita al museo de arte",
	"Perdido en una ciudad desconocida",
	"Preparando una receta tradicional",
	"Un día de compras en el mercado",
	"Una entrevista de trabajo importante",
	"Un concierto de música favorita",
	"Un viaje en tren por el campo",
	"Buscando un apartamento nuevo",
}

// RandomScenario picks one of the built-in Spanish scenarios.
func RandomScenario() string {
	return randomScenarios[rand.IntN(len(randomScenarios))]
}
