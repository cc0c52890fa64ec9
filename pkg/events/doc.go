// Package events publica notificações de domínio do serviço de usuários
// em uma fila SQS. A publicação acontece depois que o documento foi
// gravado, então uma falha aqui não desfaz o insert.
package events
