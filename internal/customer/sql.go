package customer

const listCustomersSQL = `
SELECT customer_id, cpf, name, rg, cep, street, neighborhood, city, state, email
FROM customer
ORDER BY customer_id
`

const getCustomerByCPFSQL = `
SELECT customer_id, cpf, name, rg, cep, street, neighborhood, city, state, email
FROM customer
WHERE cpf = ?
ORDER BY customer_id
LIMIT 1
`

const createCustomerSQL = `
INSERT INTO customer (
    cpf, name, rg, cep, street, neighborhood, city, state, email
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateCustomerSQL = `
UPDATE customer
SET cpf = ?, name = ?, rg = ?, cep = ?, street = ?, neighborhood = ?, city = ?, state = ?, email = ?
WHERE customer_id = ?
`

const deleteCustomersByCPFSQL = `
DELETE FROM customer
WHERE cpf = ?
`
