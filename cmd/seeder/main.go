package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"sistem-desa/config"
	"sistem-desa/internal/database"
	"sistem-desa/internal/logger"
	"sistem-desa/internal/model"
	"sistem-desa/internal/usecase"
)

var (
	cfg config.Config

	batasJenis    string
	batasNameProp string

	tokenNama    string
	tokenSubject string
	tokenRole    string
	tokenTTL     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Alat bantu pengelola server sistem desa",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env manual karena ini script terpisah
		if err := godotenv.Load(); err != nil {
			fmt.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
		}
		logger.Setup()
		cfg = config.Load()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrasi tabel lalu isi data contoh",
	RunE:  runSeed,
}

var importBatasCmd = &cobra.Command{
	Use:   "import-batas <file.geojson>",
	Short: "Impor batas wilayah dari FeatureCollection GeoJSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportBatas,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Terbitkan token JWT untuk petugas",
	RunE:  runToken,
}

func init() {
	importBatasCmd.Flags().StringVarP(&batasJenis, "jenis", "j", model.JenisRT, "Jenis batas (desa, dusun, rw, rt, atau tata guna lahan)")
	importBatasCmd.Flags().StringVarP(&batasNameProp, "name-prop", "n", "nama", "Properti GeoJSON yang berisi nama wilayah")

	tokenCmd.Flags().StringVar(&tokenNama, "nama", "", "Nama petugas")
	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "", "ID petugas (default sama dengan nama)")
	tokenCmd.Flags().StringVarP(&tokenRole, "role", "r", usecase.RoleOperator, "admin, operator, atau viewer")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Masa berlaku token (default JWT_TTL_HOURS)")
	_ = tokenCmd.MarkFlagRequired("nama")

	rootCmd.AddCommand(seedCmd, importBatasCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect membuka database; ConnectDB sudah menjalankan migrasi.
func connect() (*gorm.DB, error) {
	return config.ConnectDB(cfg)
}

func runSeed(cmd *cobra.Command, args []string) error {
	fmt.Println("🌱 Memulai Database Seeding...")
	db, err := connect()
	if err != nil {
		return err
	}

	fmt.Println("🚀 Menjalankan SeedAll...")
	if err := database.SeedAll(db); err != nil {
		return err
	}
	fmt.Println("✅ Seeding Selesai!")
	return nil
}

func runImportBatas(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	db, err := connect()
	if err != nil {
		return err
	}

	res, err := database.ImportBatas(db, f, batasJenis, batasNameProp)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %d batas wilayah (%s) diimpor\n", res.Created, batasJenis)
	for _, s := range res.Skipped {
		fmt.Printf("⚠️  dilewati: %s\n", s)
	}
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	sub := tokenSubject
	if sub == "" {
		sub = tokenNama
	}
	ttl := tokenTTL
	if ttl <= 0 {
		ttl = cfg.JWTTTL
	}

	token, err := usecase.NewTokenUsecase(cfg.JWTSecret, ttl).IssueWithTTL(sub, tokenNama, tokenRole, ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
