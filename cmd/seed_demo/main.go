// seed_demo genera un script SQL con datos de demostración (empresa, admin,
// bodega, droguerías y el catálogo de medicamentos) a partir de un vademécum
// XML. Los exports de los ERP farmacéuticos antiguos suelen venir en
// ISO-8859-1; el decodificador lo maneja de forma transparente.
//
// Uso: go run ./cmd/seed_demo [ruta/Vademecum.xml]
// Por defecto busca Vademecum.xml junto al comando.
// Escribe: scripts/seed_demo.sql (aplicar manualmente con psql).
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type vademecum struct {
	Categorias []categoria `xml:"categoria"`
}

type categoria struct {
	Nombre       string        `xml:"nombre,attr"`
	Descripcion  string        `xml:"descripcion,attr"`
	Medicamentos []medicamento `xml:"medicamento"`
}

type medicamento struct {
	SKU         string `xml:"sku,attr"`
	Nombre      string `xml:"nombre,attr"`
	Generico    string `xml:"generico,attr"`
	Laboratorio string `xml:"laboratorio,attr"`
	Precio      string `xml:"precio,attr"`
	IVA         string `xml:"iva,attr"`
	Unidad      string `xml:"unidad,attr"`
	Reorden     string `xml:"reorden,attr"`
}

const (
	demoPassword = "demo1234"
	demoEmail    = "admin@botica.demo"
)

func main() {
	xmlPath := filepath.Join("cmd", "seed_demo", "Vademecum.xml")
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var v vademecum
	dec := xml.NewDecoder(f)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&v); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash de contraseña demo: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "scripts", "seed_demo.sql")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	// IDs deterministas: el script es idempotente y re-ejecutable.
	companyID := demoID("company")
	adminID := demoID("user/admin")
	warehouseID := demoID("warehouse/central")
	shopGreenID := demoID("shop/greencross")
	shopRebajaID := demoID("shop/la-rebaja")

	out.WriteString("-- Datos de demostración para Botica Admin.\n")
	out.WriteString("-- Generado por cmd/seed_demo; aplicar con: psql $DATABASE_URL -f scripts/seed_demo.sql\n\n")

	out.WriteString("-- 1. Empresa y administrador (password: " + demoPassword + ")\n")
	fmt.Fprintf(out, "INSERT INTO companies (id, name, nit, address, phone, email) VALUES\n")
	fmt.Fprintf(out, "  ('%s', 'Distribuidora Botica Demo', '900123456-7', 'Calle 10 # 42-28, Medellín', '+57 604 444 0000', 'contacto@botica.demo')\n", companyID)
	out.WriteString("ON CONFLICT (nit) DO UPDATE SET name = EXCLUDED.name;\n\n")

	fmt.Fprintf(out, "INSERT INTO users (id, company_id, email, password_hash, name, role) VALUES\n")
	fmt.Fprintf(out, "  ('%s', '%s', '%s', '%s', 'Admin Demo', 'admin')\n", adminID, companyID, demoEmail, string(hash))
	out.WriteString("ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash;\n\n")

	out.WriteString("-- 2. Bodega central y droguerías\n")
	fmt.Fprintf(out, "INSERT INTO warehouses (id, company_id, name, address, phone) VALUES\n")
	fmt.Fprintf(out, "  ('%s', '%s', 'Bodega Central', 'Carrera 50 # 12-80, Medellín', '+57 604 444 0001')\n", warehouseID, companyID)
	out.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;\n\n")

	fmt.Fprintf(out, "INSERT INTO shops (id, company_id, name, address, phone, warehouse_id) VALUES\n")
	fmt.Fprintf(out, "  ('%s', '%s', 'Droguería GreenCross', 'Calle 33 # 65-20', '+57 604 444 0002', '%s'),\n", shopGreenID, companyID, warehouseID)
	fmt.Fprintf(out, "  ('%s', '%s', 'Droguería La Rebaja Centro', 'Carrera 46 # 52-10', '+57 604 444 0003', NULL)\n", shopRebajaID, companyID)
	out.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;\n\n")

	// 3. Catálogo: categorías y medicamentos del vademécum
	out.WriteString("-- 3. Categorías\n")
	for _, cat := range v.Categorias {
		if cat.Nombre == "" {
			continue
		}
		catID := demoID("category/" + cat.Nombre)
		fmt.Fprintf(out, "INSERT INTO categories (id, company_id, name, description) VALUES\n")
		fmt.Fprintf(out, "  ('%s', '%s', '%s', '%s')\n", catID, companyID, escapeSQL(cat.Nombre), escapeSQL(cat.Descripcion))
		out.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description;\n")
	}
	out.WriteString("\n")

	out.WriteString("-- 4. Medicamentos (con subquery a su categoría)\n")
	total := 0
	for _, cat := range v.Categorias {
		catID := demoID("category/" + cat.Nombre)
		for _, m := range cat.Medicamentos {
			if m.SKU == "" || m.Nombre == "" {
				continue
			}
			medID := demoID("medicine/" + m.SKU)
			fmt.Fprintf(out, "INSERT INTO medicines (id, company_id, sku, name, generic_name, category_id, manufacturer, unit_price, tax_rate, unit_measure, reorder_level)\n")
			fmt.Fprintf(out, "SELECT '%s', '%s', '%s', '%s', '%s', id, '%s', %s, %s, '%s', %s FROM categories WHERE id = '%s'\n",
				medID, companyID, escapeSQL(m.SKU), escapeSQL(m.Nombre), escapeSQL(m.Generico),
				escapeSQL(m.Laboratorio), orZero(m.Precio), orZero(m.IVA), escapeSQL(m.Unidad), orZero(m.Reorden), catID)
			out.WriteString("ON CONFLICT (company_id, sku) DO UPDATE SET name = EXCLUDED.name, unit_price = EXCLUDED.unit_price;\n")
			total++
		}
	}

	fmt.Printf("Generado %s: %d categorías, %d medicamentos\n", outPath, len(v.Categorias), total)
	fmt.Printf("Login demo: %s / %s\n", demoEmail, demoPassword)
}

// demoID deriva un UUID v5 estable a partir de la clave natural, para que el
// script sea idempotente entre regeneraciones.
func demoID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("botica-demo/"+key)).String()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func orZero(s string) string {
	if strings.TrimSpace(s) == "" {
		return "0"
	}
	return strings.TrimSpace(s)
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
