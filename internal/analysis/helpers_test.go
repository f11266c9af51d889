package analysis

import (
	"campana/internal/dates"
	"campana/internal/model"
)

const (
	colSi    = "aparicion_del_lider__si"
	colNo    = "aparicion_del_lider__no"
	colMeme  = "formato_del_contenido__meme"
	colFoto  = "formato_del_contenido__fotografia"
	colLogo  = "imagen_corporativa__logotipo_del_partido"
	colPlain = "recursos_de_propaganda_segun_el_institute_for_propaganda__plain-folks_(gente_del_pueblo)"
)

var testCols = []string{colSi, colNo, colMeme, colFoto, colLogo, colPlain}

// post 构造测试帖子；date 为空表示无日期
func post(candidate, date string, on ...string) *model.Post {
	p := model.NewPost("test", 0)
	p.Candidate = candidate
	for _, col := range testCols {
		p.Indicators[col] = 0
	}
	for _, col := range on {
		p.Indicators[col] = 1
	}
	if date != "" {
		d, err := dates.ParseISO(date)
		if err != nil {
			panic(err)
		}
		p.SetDate(d, nil)
	}
	return p
}

func samplePosts() []*model.Post {
	return []*model.Post{
		post("Ana", "2023-10-01", colSi, colMeme, colLogo),
		post("Ana", "2023-10-01", colSi, colFoto, colLogo, colPlain),
		post("Ana", "2023-10-02", colNo, colMeme),
		post("Luis", "2023-10-02", colSi, colFoto, colPlain),
		post("Luis", "", colNo, colFoto),
		post("Luis", "2023-10-05", colNo, colFoto, colLogo),
	}
}

func sampleDataset() *model.Dataset {
	return &model.Dataset{Posts: samplePosts(), DummyColumns: testCols}
}
