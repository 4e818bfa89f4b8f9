// token emite un JWT para la API del catálogo usando JWT_SECRET de la configuración.
//
// Uso: go run ./cmd/token <usuario> <rol>
// Roles: admin (todo), operador (productos), cualquier otro (solo lectura).
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/catalogo-productos/pkg/config"
	"github.com/jhoicas/catalogo-productos/pkg/jwt"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Uso: token <usuario> <rol>")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, os.Args[1], os.Args[2], cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
