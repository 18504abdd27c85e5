// Package docs registra la descripción OpenAPI servida en /swagger/*.
// Se mantiene a mano: cada ruta nueva del router va también en paths
// (router_test lo verifica).
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Registrar usuario", "responses": {"201": {"description": "Created"}, "409": {"description": "Email already registered"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}}},
        "/me": {"get": {"tags": ["users"], "summary": "Usuario autenticado", "responses": {"200": {"description": "OK"}}}},
        "/users": {"get": {"tags": ["users"], "summary": "Listar usuarios (admin)", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/users/{userID}": {"get": {"tags": ["users"], "summary": "Obtener usuario", "responses": {"200": {"description": "OK"}, "404": {"description": "User not found"}}}},
        "/users/{userID}/profile": {"patch": {"tags": ["users"], "summary": "Actualizar perfil", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/users/{userID}/roles": {"post": {"tags": ["users"], "summary": "Otorgar rol de plataforma (admin)", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/clubs": {"post": {"tags": ["clubs"], "summary": "Crear club", "responses": {"201": {"description": "Created"}}}, "get": {"tags": ["clubs"], "summary": "Listar clubs", "responses": {"200": {"description": "OK"}}}},
        "/clubs/{clubID}": {"get": {"tags": ["clubs"], "summary": "Obtener club", "responses": {"200": {"description": "OK"}, "404": {"description": "Club not found"}}}},
        "/clubs/{clubID}/join": {"post": {"tags": ["clubs"], "summary": "Solicitar membresía", "responses": {"201": {"description": "Created"}, "409": {"description": "Already a member or pending"}}}},
        "/clubs/{clubID}/members": {"get": {"tags": ["clubs"], "summary": "Listar miembros", "responses": {"200": {"description": "OK"}}}},
        "/clubs/{clubID}/members/{memberID}/process": {"patch": {"tags": ["clubs"], "summary": "Aprobar o rechazar membresía", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/clubs/{clubID}/members/{memberID}/role": {"patch": {"tags": ["clubs"], "summary": "Cambiar rol de miembro", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/clubs/{clubID}/certifiers": {"post": {"tags": ["clubs"], "summary": "Nombrar certificador", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}, "get": {"tags": ["clubs"], "summary": "Listar certificadores", "responses": {"200": {"description": "OK"}}}},
        "/kennels": {"post": {"tags": ["kennels"], "summary": "Crear kennel", "responses": {"201": {"description": "Created"}}}, "get": {"tags": ["kennels"], "summary": "Listar kennels", "responses": {"200": {"description": "OK"}}}},
        "/kennels/{kennelID}": {"get": {"tags": ["kennels"], "summary": "Obtener kennel", "responses": {"200": {"description": "OK"}, "404": {"description": "Kennel not found"}}}},
        "/kennels/{kennelID}/join": {"post": {"tags": ["kennels"], "summary": "Solicitar membresía", "responses": {"201": {"description": "Created"}}}},
        "/kennels/{kennelID}/members": {"get": {"tags": ["kennels"], "summary": "Listar miembros", "responses": {"200": {"description": "OK"}}}},
        "/kennels/{kennelID}/members/{memberID}/process": {"patch": {"tags": ["kennels"], "summary": "Aprobar o rechazar membresía", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/kennels/{kennelID}/members/{memberID}/role": {"patch": {"tags": ["kennels"], "summary": "Cambiar rol de miembro", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/kennels/{kennelID}/pets": {"get": {"tags": ["pets"], "summary": "Mascotas del kennel", "responses": {"200": {"description": "OK"}}}},
        "/kennels/{kennelID}/pet-links": {"get": {"tags": ["pets"], "summary": "Vínculos del kennel", "responses": {"200": {"description": "OK"}}}},
        "/pets": {"post": {"tags": ["pets"], "summary": "Crear mascota", "responses": {"201": {"description": "Created"}}}, "get": {"tags": ["pets"], "summary": "Listar mis mascotas", "responses": {"200": {"description": "OK"}}}},
        "/pets/{petID}": {"get": {"tags": ["pets"], "summary": "Obtener mascota", "responses": {"200": {"description": "OK"}, "404": {"description": "Pet not found"}}}, "patch": {"tags": ["pets"], "summary": "Actualizar mascota (PATCH)", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}, "delete": {"tags": ["pets"], "summary": "Borrar mascota", "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}},
        "/pets/{petID}/request-link": {"post": {"tags": ["pets"], "summary": "Solicitar vínculo mascota-kennel", "responses": {"201": {"description": "Created"}, "409": {"description": "Link request already exists"}}}},
        "/pet-links/{linkID}/process": {"patch": {"tags": ["pets"], "summary": "Procesar vínculo", "responses": {"200": {"description": "OK"}}}},
        "/pets/{petID}/images": {"post": {"tags": ["images"], "summary": "Agregar imagen", "responses": {"201": {"description": "Created"}}}, "get": {"tags": ["images"], "summary": "Listar imágenes", "responses": {"200": {"description": "OK"}}}},
        "/images/{imageID}": {"delete": {"tags": ["images"], "summary": "Borrar imagen", "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}},
        "/pets/{petID}/certifications": {"get": {"tags": ["certifications"], "summary": "Certificaciones de la mascota", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/courses": {"post": {"tags": ["courses"], "summary": "Crear curso", "responses": {"201": {"description": "Created"}}}, "get": {"tags": ["courses"], "summary": "Listar cursos", "responses": {"200": {"description": "OK"}}}},
        "/courses/{courseID}": {"get": {"tags": ["courses"], "summary": "Obtener curso", "responses": {"200": {"description": "OK"}, "404": {"description": "Course not found"}}}},
        "/courses/{courseID}/enrollments": {"post": {"tags": ["courses"], "summary": "Inscribirse", "responses": {"201": {"description": "Created"}, "409": {"description": "Already enrolled in this course"}}}, "get": {"tags": ["courses"], "summary": "Listar inscripciones", "responses": {"200": {"description": "OK"}}}},
        "/courses/{courseID}/certifiers": {"post": {"tags": ["courses"], "summary": "Asignar certificador", "responses": {"201": {"description": "Created"}}}, "get": {"tags": ["courses"], "summary": "Listar certificadores", "responses": {"200": {"description": "OK"}}}},
        "/enrollments/{enrollmentID}/process": {"patch": {"tags": ["courses"], "summary": "Procesar inscripción", "responses": {"200": {"description": "OK"}}}},
        "/competitions": {"post": {"tags": ["competitions"], "summary": "Crear competencia", "responses": {"201": {"description": "Created"}}}, "get": {"tags": ["competitions"], "summary": "Listar competencias", "responses": {"200": {"description": "OK"}}}},
        "/competitions/{competitionID}": {"get": {"tags": ["competitions"], "summary": "Obtener competencia", "responses": {"200": {"description": "OK"}, "404": {"description": "Competition not found"}}}},
        "/competitions/{competitionID}/entries": {"post": {"tags": ["competitions"], "summary": "Inscribirse a competencia", "responses": {"201": {"description": "Created"}}}, "get": {"tags": ["competitions"], "summary": "Listar inscripciones", "responses": {"200": {"description": "OK"}}}},
        "/entries/{entryID}/process": {"patch": {"tags": ["competitions"], "summary": "Procesar inscripción a competencia", "responses": {"200": {"description": "OK"}}}},
        "/competitions/{competitionID}/awarders": {"post": {"tags": ["competitions"], "summary": "Nominar jurado", "responses": {"201": {"description": "Created"}}}, "get": {"tags": ["competitions"], "summary": "Listar jurados", "responses": {"200": {"description": "OK"}}}},
        "/awarders/{awarderID}/process": {"patch": {"tags": ["competitions"], "summary": "Procesar nominación de jurado", "responses": {"200": {"description": "OK"}}}},
        "/awards": {"post": {"tags": ["competitions"], "summary": "Crear premio", "responses": {"201": {"description": "Created"}}}, "get": {"tags": ["competitions"], "summary": "Listar premios", "responses": {"200": {"description": "OK"}}}},
        "/awards/{awardID}": {"get": {"tags": ["competitions"], "summary": "Obtener premio", "responses": {"200": {"description": "OK"}, "404": {"description": "Award not found"}}}},
        "/competitions/{competitionID}/awards": {"post": {"tags": ["competitions"], "summary": "Asignar premio", "responses": {"201": {"description": "Created"}, "409": {"description": "Award already assigned to this competition"}}}, "get": {"tags": ["competitions"], "summary": "Premios asignados", "responses": {"200": {"description": "OK"}}}},
        "/certifications": {"post": {"tags": ["certifications"], "summary": "Solicitar certificación", "responses": {"201": {"description": "Created"}}}},
        "/certifications/{certificationID}": {"get": {"tags": ["certifications"], "summary": "Obtener certificación", "responses": {"200": {"description": "OK"}, "404": {"description": "Certification not found"}}}},
        "/certifications/{certificationID}/process": {"patch": {"tags": ["certifications"], "summary": "Procesar certificación", "responses": {"200": {"description": "OK"}}}},
        "/paperwork": {"post": {"tags": ["paperwork"], "summary": "Enviar documentación", "responses": {"201": {"description": "Created"}}}, "get": {"tags": ["paperwork"], "summary": "Mis envíos", "responses": {"200": {"description": "OK"}}}},
        "/paperwork/pending": {"get": {"tags": ["paperwork"], "summary": "Envíos pendientes (admin)", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/paperwork/{submissionID}/process": {"patch": {"tags": ["paperwork"], "summary": "Procesar documentación (admin)", "responses": {"200": {"description": "OK"}}}},
        "/match": {"post": {"tags": ["match"], "summary": "Crear match", "responses": {"201": {"description": "Created"}, "409": {"description": "Match already exists"}}}, "get": {"tags": ["match"], "summary": "Mis matches", "responses": {"200": {"description": "OK"}}}},
        "/match/{matchID}": {"get": {"tags": ["match"], "summary": "Obtener match", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}, "patch": {"tags": ["match"], "summary": "Responder match", "responses": {"200": {"description": "OK"}, "400": {"description": "Already responded"}}}, "delete": {"tags": ["match"], "summary": "Cancelar match", "responses": {"204": {"description": "No Content"}}}},
        "/match/{matchID}/messages": {"post": {"tags": ["messages"], "summary": "Enviar mensaje", "responses": {"201": {"description": "Created"}}}, "get": {"tags": ["messages"], "summary": "Historial del chat", "responses": {"200": {"description": "OK"}}}},
        "/match/{matchID}/ws": {"get": {"tags": ["messages"], "summary": "Websocket del chat", "responses": {"101": {"description": "Switching Protocols"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Marketplace API",
	Description:      "Clubs, kennels, mascotas, cursos, competencias, certificaciones y matches.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
