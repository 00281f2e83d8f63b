// Package docs Carnaval Microservice API.
//
// Backend para la logística de eventos de carnaval: control de aforo de
// espacios públicos y gestión de permisos de vendedores ambulantes.
//
// Módulos:
// - Aforo: registro de espacios, entradas/salidas, alertas por umbral de ocupación y reportes
// - Permisos: registro de vendedores, solicitudes de permiso, aprobación con número de permiso y estadísticas
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
