package chat

import "math/rand/v2"

// Starter categories.
const (
	CategoryRegistration   = "registration"
	CategoryAcademic       = "academic"
	CategoryAdministration = "administration"
	CategoryFacilities     = "facilities"
)

// Starter is a suggested opening question shown by UI hosts.
type Starter struct {
	Label    string `json:"label"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

var categoryOrder = []string{
	CategoryRegistration,
	CategoryAcademic,
	CategoryAdministration,
	CategoryFacilities,
}

var categoryIcons = map[string]string{
	CategoryRegistration:   "/public/write.svg",
	CategoryAcademic:       "/public/learn.svg",
	CategoryAdministration: "/public/idea.svg",
	CategoryFacilities:     "/public/question.svg",
}

var starterData = map[string][][2]string{
	CategoryRegistration: {
		{"Prosedur pendaftaran", "Bagaimana prosedur pendaftaran mahasiswa baru di Universitas Gunadarma?"},
		{"Biaya kuliah", "Berapa rincian biaya kuliah untuk fakultas Teknik Industri?"},
		{"Jalur masuk", "Apa saja jalur masuk yang tersedia untuk calon mahasiswa baru?"},
		{"Syarat pendaftaran", "Dokumen apa saja yang diperlukan untuk pendaftaran?"},
		{"Jadwal pendaftaran", "Kapan jadwal pendaftaran mahasiswa baru dibuka dan ditutup?"},
		{"Program beasiswa", "Apakah ada program beasiswa yang tersedia dan bagaimana cara mendaftarnya?"},
	},
	CategoryAcademic: {
		{"Daftar fakultas", "Sebutkan semua fakultas yang ada di Universitas Gunadarma."},
		{"Program studi FIKTI", "Apa saja program studi yang ada di Fakultas Ilmu Komputer & Teknologi Informasi?"},
		{"Kalender akademik", "Di mana saya bisa melihat kalender akademik untuk tahun ini?"},
		{"Cara mengisi KRS", "Bagaimana langkah-langkah untuk mengisi Kartu Rencana Studi (KRS)?"},
		{"Syarat mengambil skripsi", "Apa saja syarat untuk bisa mengambil mata kuliah skripsi?"},
		{"Prosedur cuti akademik", "Bagaimana prosedur untuk mengajukan cuti akademik?"},
		{"Akreditasi universitas", "Apa status akreditasi Universitas Gunadarma saat ini?"},
		{"Program pascasarjana", "Program pascasarjana apa saja yang tersedia?"},
		{"Cara melihat IPK", "Bagaimana cara melihat Indeks Prestasi Kumulatif (IPK) di Studentsite?"},
	},
	CategoryAdministration: {
		{"Kontak BAAK", "Bagaimana cara menghubungi BAAK Universitas Gunadarma?"},
		{"Lokasi kantor BAAK", "Di mana lokasi kantor BAAK di kampus D?"},
		{"Prosedur legalisir ijazah", "Bagaimana prosedur untuk legalisir ijazah?"},
		{"Mengurus KTM yang hilang", "Apa yang harus saya lakukan jika Kartu Tanda Mahasiswa (KTM) saya hilang?"},
		{"Jadwal pembayaran", "Kapan batas akhir pembayaran Uang Kuliah untuk semester depan?"},
		{"Mendapatkan transkrip nilai", "Bagaimana cara mendapatkan transkrip nilai resmi?"},
	},
	CategoryFacilities: {
		{"Lokasi perpustakaan", "Di mana lokasi perpustakaan pusat Universitas Gunadarma?"},
		{"Unit Kegiatan Mahasiswa (UKM)", "Apa saja Unit Kegiatan Mahasiswa (UKM) yang populer?"},
		{"Fasilitas olahraga", "Fasilitas olahraga apa saja yang dimiliki Gunadarma?"},
		{"Lokasi kampus J1", "Di mana alamat lengkap kampus J1 Kalimalang?"},
		{"Akses Wi-Fi kampus", "Bagaimana cara mengakses jaringan Wi-Fi di area kampus?"},
		{"Fasilitas poliklinik", "Apakah ada fasilitas kesehatan atau poliklinik untuk mahasiswa?"},
		{"Sejarah Gunadarma", "Ceritakan secara singkat tentang sejarah berdirinya Universitas Gunadarma."},
	},
}

// Starters returns every starter question, grouped by category.
func Starters() []Starter {
	var out []Starter
	for _, cat := range categoryOrder {
		for _, s := range starterData[cat] {
			out = append(out, Starter{Label: s[0], Message: s[1], Category: cat, Icon: categoryIcons[cat]})
		}
	}
	return out
}

// PickStarters selects one random starter per category in shuffled order.
// A nil r uses the global source.
func PickStarters(r *rand.Rand) []Starter {
	intN := rand.IntN
	shuffle := rand.Shuffle
	if r != nil {
		intN = r.IntN
		shuffle = r.Shuffle
	}

	byCat := make(map[string][]Starter)
	for _, s := range Starters() {
		byCat[s.Category] = append(byCat[s.Category], s)
	}
	picked := make([]Starter, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		group := byCat[cat]
		if len(group) == 0 {
			continue
		}
		picked = append(picked, group[intN(len(group))])
	}
	shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	return picked
}
