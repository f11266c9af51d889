package codebook

import "strconv"

func cats(labels ...string) []Category {
	out := make([]Category, len(labels))
	for i, l := range labels {
		out[i] = Category{Code: strconv.Itoa(i + 1), Label: l}
	}
	return out
}

// Default 研究使用的内置编码表（代码从 1 连续编号）
func Default() *Codebook {
	return &Codebook{Variables: []Variable{
		{Name: "Contenido visual del post", Categories: cats(
			"Solo imagen",
			"Vídeo",
			"Sólo texto",
			"Combinación de imagen y texto",
			"Indeterminado",
			"Otro",
		)},
		{Name: "Formato del contenido", Categories: cats(
			"Fotografía",
			"Collage",
			"Ilustración",
			"Montaje",
			"Meme",
			"Indeterminado",
			"Otro",
		)},
		{Name: "Aparición del líder", Categories: cats(
			"Sí",
			"No",
			"Indeterminado",
		)},
		{Name: "Aparición de terceras personas", Categories: cats(
			"Ninguna",
			"Familiares",
			"Líderes carismáticos",
			"Compañeros de partido",
			"Votantes",
			"Candidato/rival",
			"Políticos de la esfera nacional",
			"Políticos de la esfera internacional",
			"Indeterminado",
		)},
		{Name: "Contexto de la imagen", Categories: cats(
			"Contexto profesional",
			"Contexto mediático",
			"Contexto personal",
			"Vía pública",
			"Sarcastico",
			"Indeterminado",
		)},
		{Name: "Imagen corporativa", Categories: cats(
			"Bandera de partido",
			"Logotipo del partido",
			"Música del partido",
			"Color corporativo",
			"Indeterminado",
		)},
		{Name: "Tipo de propaganda", Categories: cats(
			"Propaganda de afirmación",
			"Propaganda de negación",
			"Propaganda de reacción",
			"Indeterminado",
		)},
		{Name: "Recursos de propaganda según el Institute for propaganda", Categories: cats(
			"Name-calling (Improperios)",
			"Glittering-generalities (Generalidades brillantes)",
			"Transfer (Transferencia)",
			"Testimonial (Testimonio)",
			"Plain-folks (Gente del pueblo)",
			"Card-stacking (Cartas Trucadas)",
			"Band-wagon (Imitación)",
		)},
		{Name: "Reglas de la propaganda según Domenach", Categories: cats(
			"Regla de simplificación y enemigo único",
			"Regla de la exageración y desfiguración",
			"Regla de la orquestación",
			"Regla de la transfusión",
			"Regla de la unanimidad",
		)},
	}}
}
