package chat

// Suggestions is the static suggestion list offered by /suggest.
var Suggestions = []string{
	"Bagaimana cara mendaftar kuliah di Universitas Gunadarma?",
	"Program studi apa saja yang tersedia?",
	"Berapa biaya kuliah per semester?",
	"Dimana alamat kampus Universitas Gunadarma?",
	"Fasilitas apa saja yang tersedia di kampus?",
}
