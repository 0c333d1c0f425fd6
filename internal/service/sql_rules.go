package service

import "strings"

// crmNamingRules are the schema-specific corrections the synthesis prompt
// imposes on the model. They encode domain vocabulary (table and column
// quirks of the CRM, stage-name filters, lookup conventions) and are data,
// not control flow: editing the list changes the prompt without touching
// the pipeline.
var crmNamingRules = []string{
	`Presta especial atención para **no** incluir columnas que no existan en el esquema y recuerda que no existe la tabla "opportunity" sino "oportunity".`,
	`Debes utilizar **exclusivamente sintaxis compatible con PostgreSQL**, evitando funciones y operadores propios de otros motores como MySQL o SQL Server.`,
	`Si la pregunta es ambigua (por ejemplo: "y el asesor Ysabel?"), utiliza el historial reciente para inferir el contexto completo.`,
	`Si el nombre de una tabla coincide con una palabra reservada de SQL (como 'user'), debe ir **entre comillas dobles** ("user").`,
	`Si se pregunta por países, la consulta debe hacerse con el nombre del país en español, ejemplo: México.`,
	`Si se pregunta sobre algún nombre, por defecto búscalo sin distinguir mayúsculas o minúsculas y que permita coincidencias parciales (por ejemplo: ILIKE '%alexis%') a menos que se especifique lo contrario.`,
	`Si se pregunta sobre productos ten en cuenta su tabla "product".`,
	`Si se pregunta sobre cursos, considera que todos los productos corresponden a cursos y realiza la consulta directamente en la tabla "product" sin ningún filtro adicional salvo que se especifique explícitamente en la pregunta. Nunca utilices cláusulas WHERE relacionadas con cursos salvo que se indique claramente en la pregunta.`,
	`Si se pregunta sobre dónde proviene un precontacto se refiere al campo "note" de la tabla "pre_contact" y busca sin distinguir mayúsculas.`,
	`Si se pregunta por los productos de una oportunidad consulta la tabla 'oportunity_has_product'.`,
	`Si se pregunta por los asesores significa buscar usuario con el rol de Asesor.`,
	`Si se pregunta por el nombre de un usuario, lead o precontacto busca el campo 'fullname' de sus tablas correspondientes.`,
	`Las consultas FROM user cámbialas a FROM "user".`,
	`La tabla "user" no representa leads. Los leads están en la tabla "lead", y deben consultarse exclusivamente desde esa tabla. Nunca asumas que "user" contiene leads.`,
	`Las oportunidades nuevas significan filtrar oportunidades cuyo 'stage_id' corresponda al id de 'stage' donde 'name' = 'Nuevo'.`,
	`Las oportunidades perdidas significan filtrar oportunidades cuyo 'stage_id' corresponda al id de 'stage' donde 'name' = 'Perdido'.`,
	`Las oportunidades ganadas o ventas significan filtrar oportunidades cuyo 'stage_id' corresponda al id de 'stage' donde 'name' = 'Ganado'.`,
	`Las oportunidades en seguimiento significan filtrar oportunidades cuyo 'stage_id' corresponda al id de 'stage' donde 'name' = 'Seguimiento'.`,
	`Las oportunidades por pagar significan filtrar oportunidades cuyo 'stage_id' corresponda al id de 'stage' donde 'name' = 'Pagará'.`,
	`Un usuario no es un lead ni un precontacto.`,
	`La tabla "opportunity" no existe. Cualquier consulta debe hacerse usando exclusivamente la tabla "oportunity" (con una sola "p"). Bajo ninguna circunstancia debe escribirse "opportunity".`,
	`La tabla "opportunity_has_product" no existe. Cualquier consulta debe hacerse usando exclusivamente la tabla "oportunity_has_product" (con una sola "p"). Bajo ninguna circunstancia debe escribirse "opportunity_has_product".`,
	`La tabla correcta es "user" no "users".`,
	`Si quieres consultar los roles de un usuario busca en la tabla 'user_has_role'.`,
	`No existe columna llamada owner_id.`,
	`No existe columna llamada 'date' en la tabla 'oportunity'.`,
	`Si se pregunta por la fecha actual utiliza funciones del sistema como NOW() o CURRENT_DATE. Bajo ningún concepto uses fechas fijas, predefinidas o inferidas a partir de información interna de tu modelo.`,
}

func renderNamingRules() string {
	return strings.Join(crmNamingRules, "\n")
}
